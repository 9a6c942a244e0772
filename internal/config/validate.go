package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/tuivocab/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// flagNames maps model.Config fields to the CLI flags that set them.
var flagNames = map[string]string{
	"Level":      "--level",
	"Player":     "--player",
	"WeakTop":    "--weak-top",
	"WeakFactor": "--weak-factor",
}

// Validate checks resolved game settings and reports the first violation by flag name.
func Validate(cfg model.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid config: %w", err)
	}
	fe := verrs[0]
	name, ok := flagNames[fe.Field()]
	if !ok {
		name = strings.ToLower(fe.Field())
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must not be empty", name)
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Errorf("%s must be >= %s", name, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", name, fe.Param())
	default:
		return fmt.Errorf("%s is invalid (%s)", name, fe.Tag())
	}
}
