package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeStdio {
		t.Errorf("default mode = %q, want %q", cfg.Mode, ModeStdio)
	}
	if cfg.InputPath != "" {
		t.Errorf("default input path = %q, want empty", cfg.InputPath)
	}
	if cfg.ServerName != "registro-alojamientos" {
		t.Errorf("default server name = %q", cfg.ServerName)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("default log level = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("default max file size = %d, want %d", cfg.MaxFileSize, DefaultMaxFileSize)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid stdio mode",
			modify: func(c *Config) {},
		},
		{
			name: "valid extract mode",
			modify: func(c *Config) {
				c.Mode = ModeExtract
				c.InputPath = "/reports/registro.pdf"
			},
		},
		{
			name:    "unknown mode",
			modify:  func(c *Config) { c.Mode = "daemon" },
			wantErr: "mode must be",
		},
		{
			name:    "extract mode without input",
			modify:  func(c *Config) { c.Mode = ModeExtract },
			wantErr: "requires an input path",
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Format = "yaml" },
			wantErr: "format must be",
		},
		{
			name:    "zero max file size",
			modify:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: "must be positive",
		},
		{
			name:    "negative max file size",
			modify:  func(c *Config) { c.MaxFileSize = -1 },
			wantErr: "must be positive",
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestModeHelpers(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.IsStdioMode() || cfg.IsExtractMode() {
		t.Error("default config should be in stdio mode")
	}

	cfg.Mode = ModeExtract
	if cfg.IsStdioMode() || !cfg.IsExtractMode() {
		t.Error("extract mode helpers disagree with mode field")
	}

	if cfg.IsDebug() {
		t.Error("info level should not report debug")
	}
	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("debug level should report debug")
	}
}

func TestString(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputPath = "/reports/registro.pdf"

	s := cfg.String()
	for _, want := range []string{ModeStdio, "/reports/registro.pdf", DefaultLogLevel} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
