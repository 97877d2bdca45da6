// Package config loads and validates the converter's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hollisjv/go-html2deck/internal/fileutil"
	"github.com/hollisjv/go-html2deck/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Bounds on configurable waits and pool sizes.
const (
	MaxNavigationTimeout = 5 * time.Minute
	MaxReadinessBudget   = 2 * time.Minute
	MaxSettleDelay       = 30 * time.Second
	MaxWorkers           = 8

	MaxPageDimensionMM = 5080.0
	MinScale           = 0.1
	MaxScale           = 2.0
)

// Config holds all configuration for deck building.
type Config struct {
	Slides  SlidesConfig  `yaml:"slides"`
	Output  OutputConfig  `yaml:"output"`
	Page    PageConfig    `yaml:"page"`
	Browser BrowserConfig `yaml:"browser"`
}

// SlidesConfig defines where slide HTML documents come from.
type SlidesConfig struct {
	InputDir  string `yaml:"inputDir"`  // Directory scanned for slides (empty = must specify)
	IndexFile string `yaml:"indexFile"` // Fallback single document (default: "index.html")
}

// OutputConfig defines deck assembly destinations and policy.
type OutputConfig struct {
	Dir          string `yaml:"dir"`          // Deck output directory (default: "output")
	MergePartial bool   `yaml:"mergePartial"` // Merge the successful subset when some pages fail
	SkipMerge    bool   `yaml:"skipMerge"`    // Stop after per-page rendering
	CleanupPages bool   `yaml:"cleanupPages"` // Remove per-page PDFs after a successful merge
}

// PageConfig defines the physical page each slide is captured to.
type PageConfig struct {
	WidthMM         float64 `yaml:"widthMM"`         // default: 338.67 (1280px at 96dpi)
	HeightMM        float64 `yaml:"heightMM"`        // default: 190.5 (720px at 96dpi)
	MarginMM        float64 `yaml:"marginMM"`        // applied to all four sides
	PrintBackground bool    `yaml:"printBackground"` // include background graphics
	Landscape       bool    `yaml:"landscape"`
	Scale           float64 `yaml:"scale"` // default: 1.0
}

// BrowserConfig defines browser process and wait behavior.
type BrowserConfig struct {
	Bin                 string `yaml:"bin"`                 // Chrome/Chromium binary (empty = auto)
	NavigationTimeoutMS int    `yaml:"navigationTimeoutMS"` // default: 30000
	ReadinessBudgetMS   int    `yaml:"readinessBudgetMS"`   // default: 10000
	SettleDelayMS       int    `yaml:"settleDelayMS"`       // default: 2000
	Workers             int    `yaml:"workers"`             // concurrent page contexts, 0 = default
}

// DefaultConfig returns the standard 16:9 slide pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		Slides: SlidesConfig{
			InputDir:  "slides",
			IndexFile: "index.html",
		},
		Output: OutputConfig{
			Dir:          "output",
			MergePartial: true,
			CleanupPages: true,
		},
		Page: PageConfig{
			WidthMM:         338.67,
			HeightMM:        190.5,
			PrintBackground: true,
			Scale:           1.0,
		},
		Browser: BrowserConfig{
			NavigationTimeoutMS: 30000,
			ReadinessBudgetMS:   10000,
			SettleDelayMS:       2000,
		},
	}
}

// Validate checks value bounds. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if c.Page.WidthMM <= 0 || c.Page.WidthMM > MaxPageDimensionMM {
		return fmt.Errorf("%w: page.widthMM %.2f", ErrInvalidValue, c.Page.WidthMM)
	}
	if c.Page.HeightMM <= 0 || c.Page.HeightMM > MaxPageDimensionMM {
		return fmt.Errorf("%w: page.heightMM %.2f", ErrInvalidValue, c.Page.HeightMM)
	}
	if c.Page.MarginMM < 0 {
		return fmt.Errorf("%w: page.marginMM %.2f (must be >= 0)", ErrInvalidValue, c.Page.MarginMM)
	}
	if c.Page.Scale < MinScale || c.Page.Scale > MaxScale {
		return fmt.Errorf("%w: page.scale %.2f (must be between %.1f and %.1f)", ErrInvalidValue, c.Page.Scale, MinScale, MaxScale)
	}
	if c.Browser.NavigationTimeoutMS <= 0 || time.Duration(c.Browser.NavigationTimeoutMS)*time.Millisecond > MaxNavigationTimeout {
		return fmt.Errorf("%w: browser.navigationTimeoutMS %d", ErrInvalidValue, c.Browser.NavigationTimeoutMS)
	}
	if c.Browser.ReadinessBudgetMS <= 0 || time.Duration(c.Browser.ReadinessBudgetMS)*time.Millisecond > MaxReadinessBudget {
		return fmt.Errorf("%w: browser.readinessBudgetMS %d", ErrInvalidValue, c.Browser.ReadinessBudgetMS)
	}
	if c.Browser.SettleDelayMS < 0 || time.Duration(c.Browser.SettleDelayMS)*time.Millisecond > MaxSettleDelay {
		return fmt.Errorf("%w: browser.settleDelayMS %d", ErrInvalidValue, c.Browser.SettleDelayMS)
	}
	if c.Browser.Workers < 0 || c.Browser.Workers > MaxWorkers {
		return fmt.Errorf("%w: browser.workers %d (must be 0..%d)", ErrInvalidValue, c.Browser.Workers, MaxWorkers)
	}
	return nil
}

// NavigationTimeout returns the navigation bound as a duration.
func (c *Config) NavigationTimeout() time.Duration {
	return time.Duration(c.Browser.NavigationTimeoutMS) * time.Millisecond
}

// ReadinessBudget returns the readiness wait bound as a duration.
func (c *Config) ReadinessBudget() time.Duration {
	return time.Duration(c.Browser.ReadinessBudgetMS) * time.Millisecond
}

// SettleDelay returns the post-load settle delay as a duration.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Browser.SettleDelayMS) * time.Millisecond
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's a config name searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start from defaults so a sparse file only overrides what it names.
	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/html2deck/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "html2deck", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
