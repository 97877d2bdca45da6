package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Slides.InputDir != "slides" {
		t.Errorf("Slides.InputDir = %q, want %q", cfg.Slides.InputDir, "slides")
	}
	if cfg.Slides.IndexFile != "index.html" {
		t.Errorf("Slides.IndexFile = %q, want %q", cfg.Slides.IndexFile, "index.html")
	}
	if cfg.Output.Dir != "output" {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "output")
	}
	if !cfg.Output.MergePartial {
		t.Error("Output.MergePartial = false, want true")
	}
	if cfg.Output.SkipMerge {
		t.Error("Output.SkipMerge = true, want false")
	}
	if !cfg.Output.CleanupPages {
		t.Error("Output.CleanupPages = false, want true")
	}
	if cfg.Page.WidthMM != 338.67 {
		t.Errorf("Page.WidthMM = %v, want 338.67", cfg.Page.WidthMM)
	}
	if cfg.Page.HeightMM != 190.5 {
		t.Errorf("Page.HeightMM = %v, want 190.5", cfg.Page.HeightMM)
	}
	if !cfg.Page.PrintBackground {
		t.Error("Page.PrintBackground = false, want true")
	}
	if cfg.Page.Scale != 1.0 {
		t.Errorf("Page.Scale = %v, want 1.0", cfg.Page.Scale)
	}
	if cfg.Browser.NavigationTimeoutMS != 30000 {
		t.Errorf("Browser.NavigationTimeoutMS = %d, want 30000", cfg.Browser.NavigationTimeoutMS)
	}
	if cfg.Browser.Workers != 0 {
		t.Errorf("Browser.Workers = %d, want 0", cfg.Browser.Workers)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero page width",
			mutate:  func(c *Config) { c.Page.WidthMM = 0 },
			wantErr: true,
		},
		{
			name:    "negative page height",
			mutate:  func(c *Config) { c.Page.HeightMM = -1 },
			wantErr: true,
		},
		{
			name:    "width over device limit",
			mutate:  func(c *Config) { c.Page.WidthMM = MaxPageDimensionMM + 1 },
			wantErr: true,
		},
		{
			name:    "width at device limit",
			mutate:  func(c *Config) { c.Page.WidthMM = MaxPageDimensionMM },
			wantErr: false,
		},
		{
			name:    "negative margin",
			mutate:  func(c *Config) { c.Page.MarginMM = -0.5 },
			wantErr: true,
		},
		{
			name:    "scale below minimum",
			mutate:  func(c *Config) { c.Page.Scale = 0.05 },
			wantErr: true,
		},
		{
			name:    "scale above maximum",
			mutate:  func(c *Config) { c.Page.Scale = 2.5 },
			wantErr: true,
		},
		{
			name:    "zero navigation timeout",
			mutate:  func(c *Config) { c.Browser.NavigationTimeoutMS = 0 },
			wantErr: true,
		},
		{
			name:    "navigation timeout over limit",
			mutate:  func(c *Config) { c.Browser.NavigationTimeoutMS = int(MaxNavigationTimeout/time.Millisecond) + 1 },
			wantErr: true,
		},
		{
			name:    "zero readiness budget",
			mutate:  func(c *Config) { c.Browser.ReadinessBudgetMS = 0 },
			wantErr: true,
		},
		{
			name:    "zero settle delay is valid",
			mutate:  func(c *Config) { c.Browser.SettleDelayMS = 0 },
			wantErr: false,
		},
		{
			name:    "negative settle delay",
			mutate:  func(c *Config) { c.Browser.SettleDelayMS = -1 },
			wantErr: true,
		},
		{
			name:    "workers over limit",
			mutate:  func(c *Config) { c.Browser.Workers = MaxWorkers + 1 },
			wantErr: true,
		},
		{
			name:    "workers at limit",
			mutate:  func(c *Config) { c.Browser.Workers = MaxWorkers },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidValue) {
					t.Errorf("error = %v, want ErrInvalidValue", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.NavigationTimeout(); got != 30*time.Second {
		t.Errorf("NavigationTimeout() = %v, want 30s", got)
	}
	if got := cfg.ReadinessBudget(); got != 10*time.Second {
		t.Errorf("ReadinessBudget() = %v, want 10s", got)
	}
	if got := cfg.SettleDelay(); got != 2*time.Second {
		t.Errorf("SettleDelay() = %v, want 2s", got)
	}
}

func TestLoadConfig_EmptyName(t *testing.T) {
	_, err := LoadConfig("")
	if !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfig_SparseOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	content := `
page:
  widthMM: 254.0
  heightMM: 190.5
browser:
  workers: 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Page.WidthMM != 254.0 {
		t.Errorf("Page.WidthMM = %v, want 254.0", cfg.Page.WidthMM)
	}
	if cfg.Browser.Workers != 4 {
		t.Errorf("Browser.Workers = %d, want 4", cfg.Browser.Workers)
	}
	// Fields the file does not name keep their defaults.
	if cfg.Slides.IndexFile != "index.html" {
		t.Errorf("Slides.IndexFile = %q, want default %q", cfg.Slides.IndexFile, "index.html")
	}
	if cfg.Browser.NavigationTimeoutMS != 30000 {
		t.Errorf("Browser.NavigationTimeoutMS = %d, want default 30000", cfg.Browser.NavigationTimeoutMS)
	}
}

func TestLoadConfig_UnknownFieldRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	content := `
page:
  widthMM: 254.0
  colour: blue
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("error = %v, want ErrConfigParse", err)
	}
}

func TestLoadConfig_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	content := `
page:
  scale: 9.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	if err := os.WriteFile(path, []byte("page: [unclosed"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("error = %v, want ErrConfigParse", err)
	}
}
