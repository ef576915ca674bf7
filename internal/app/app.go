// Package app wires the application's dependencies together.
package app

import (
	"log/slog"

	"themesmith/internal/adapters/terminal"
	"themesmith/internal/config"
	"themesmith/internal/domain"
	"themesmith/internal/fileops"
	"themesmith/internal/recent"
	"themesmith/internal/security"
)

// App contains all application dependencies.
type App struct {
	// Core services
	Security *security.Service
	Files    *fileops.Service
	Recent   *recent.Store

	// Settings persisted between runs
	Settings *config.Manager

	// File operations
	FileSystem domain.FileSystemAdapter

	// I/O dependencies
	Progress *terminal.ProgressRenderer

	// Logging
	Logger *slog.Logger

	// Effective limits after environment overrides
	Limits config.Limits

	// Configuration
	Config *Config
}

// Config holds application configuration.
type Config struct {
	LogLevel slog.Level
	Verbose  bool
}

// Option is a functional option for configuring the App.
type Option func(*Config)

// WithLogLevel sets the logging level.
func WithLogLevel(level slog.Level) Option {
	return func(cfg *Config) {
		cfg.LogLevel = level
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(cfg *Config) {
		cfg.Verbose = verbose
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
	}
}

// New creates a new App with the given options.
func New(opts ...Option) (*App, error) {
	cfg := &Config{
		LogLevel: slog.LevelInfo,
		Verbose:  false,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return newWithConfig(cfg)
}

// Close releases background resources held by the app.
func (a *App) Close() {
	a.Files.CancelAll()
	a.Security.Cleanup()
}
