package app

import (
	"os"

	"themesmith/internal/adapters/filesystem"
	"themesmith/internal/adapters/terminal"
	"themesmith/internal/config"
	"themesmith/internal/fileops"
	"themesmith/internal/logging"
	"themesmith/internal/recent"
	"themesmith/internal/security"
)

// newWithConfig wires all dependencies for the given configuration.
func newWithConfig(cfg *Config) (*App, error) {
	logger := logging.NewLogger(cfg.LogLevel)

	fs := filesystem.New()

	// Environment overrides first, then the settings file narrows them.
	limits := config.Load()

	settingsPath, err := config.DefaultSettingsPath(fs)
	if err != nil {
		return nil, err
	}
	settingsManager := config.NewManager(fs, settingsPath)
	settings, err := settingsManager.Load()
	if err != nil {
		return nil, err
	}
	limits = settings.Apply(limits)

	gateway := security.NewService(fs, limits, logger)
	files := fileops.NewService(fs, gateway, limits, logger)

	store, err := recent.NewStore(fs, limits.RecentFilesLimit, logger)
	if err != nil {
		gateway.Cleanup()
		return nil, err
	}

	logger.Info("initializing themesmith",
		"logLevel", cfg.LogLevel.String(),
		"verbose", cfg.Verbose,
		"settingsPath", settingsPath)

	return &App{
		Security:   gateway,
		Files:      files,
		Recent:     store,
		Settings:   settingsManager,
		FileSystem: fs,
		Progress:   terminal.NewProgressRenderer(os.Stderr),
		Logger:     logger,
		Limits:     limits,
		Config:     cfg,
	}, nil
}
