package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/tuivocab/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Game.Level != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[game]
level = "advanced"
player = "Lan"
weak-top = 5

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Game.Level == nil || *cfg.Game.Level != "advanced" {
		t.Fatalf("unexpected level: %v", cfg.Game.Level)
	}
	if cfg.Game.Player == nil || *cfg.Game.Player != "Lan" {
		t.Fatalf("unexpected player: %v", cfg.Game.Player)
	}
	if cfg.Game.WeakTop == nil || *cfg.Game.WeakTop != 5 {
		t.Fatalf("unexpected weak-top: %v", cfg.Game.WeakTop)
	}
	if cfg.Game.FocusWeak != nil {
		t.Fatalf("expected focus-weak to stay unset")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\nlevl = \"beginner\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     model.Config
		wantErr string
	}{
		{name: "valid", cfg: model.Config{Level: "beginner", WeakTop: 8, WeakFactor: 2}},
		{name: "missing level", cfg: model.Config{}, wantErr: "--level must not be empty"},
		{name: "unknown level", cfg: model.Config{Level: "expert"}, wantErr: "--level must be one of"},
		{name: "negative weak top", cfg: model.Config{Level: "beginner", WeakTop: -1}, wantErr: "--weak-top must be >= 0"},
		{name: "negative factor", cfg: model.Config{Level: "beginner", WeakFactor: -0.5}, wantErr: "--weak-factor must be >= 0"},
		{name: "long player", cfg: model.Config{Level: "beginner", Player: strings.Repeat("x", 40)}, wantErr: "--player must be at most 32"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
