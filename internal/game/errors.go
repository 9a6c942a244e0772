package game

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/tuivocab/internal/model"
)

var (
	// ErrInvalidMode is returned when a mode has no registered strategy.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrNotRunning is returned when an operation needs a running session.
	ErrNotRunning = errors.New("no running session")
	// ErrAlreadyAnswered is returned for a second answer to one turn-based question.
	ErrAlreadyAnswered = errors.New("question already answered")
)

// InvalidModeError carries the rejected mode.
type InvalidModeError struct {
	Mode model.ModeID
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q", e.Mode)
}

func (e *InvalidModeError) Unwrap() error {
	return ErrInvalidMode
}
