package main

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hollisjv/go-html2deck/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
	Config *config.Config // Loaded once, shared across the run
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: zap.NewNop(), // replaced once flags are parsed
		Config: config.DefaultConfig(),
	}
}

// buildLogger creates the zap logger matching the requested verbosity.
// Production config by default; development config with debug level when
// verbose; errors only when quiet.
func buildLogger(verbose, quiet bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	if quiet {
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	return cfg.Build()
}
