package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"themesmith/internal/domain"
	"themesmith/internal/errors"
)

// Settings is the persisted user configuration under ~/.config/themesmith.
// It carries preferences only; safety limits come from Limits and cannot be
// relaxed from the settings file.
type Settings struct {
	Version           string   `yaml:"version"`
	OutputDir         string   `yaml:"outputDir,omitempty"`
	LogLevel          string   `yaml:"logLevel,omitempty"`
	AllowedExtensions []string `yaml:"allowedExtensions,omitempty"`
}

// Manager handles settings file operations.
type Manager struct {
	fs           domain.FileSystemAdapter
	settingsPath string
}

// NewManager creates a new settings manager.
func NewManager(fs domain.FileSystemAdapter, settingsPath string) *Manager {
	return &Manager{
		fs:           fs,
		settingsPath: settingsPath,
	}
}

// DefaultSettingsPath returns the standard settings file location.
func DefaultSettingsPath(fs domain.FileSystemAdapter) (string, error) {
	homeDir, err := fs.UserHomeDir()
	if err != nil {
		return "", errors.NewFileProcessingError("settings", "", "could not resolve home directory", err)
	}
	return filepath.Join(homeDir, ".config", "themesmith", "config.yaml"), nil
}

// Load reads the settings file, returning defaults when it does not exist.
func (m *Manager) Load() (*Settings, error) {
	data, err := m.fs.ReadFile(m.settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{Version: "1.0"}, nil
		}
		return nil, errors.NewFileProcessingError("settings", m.settingsPath, "could not read settings file", err)
	}

	if len(data) == 0 {
		return &Settings{Version: "1.0"}, nil
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, errors.NewValidationError("settings", m.settingsPath, "yaml", "settings file is not valid YAML")
	}
	if settings.Version == "" {
		settings.Version = "1.0"
	}

	return &settings, nil
}

// Save writes the settings file, creating its directory as needed.
func (m *Manager) Save(settings *Settings) error {
	if err := m.fs.MkdirAll(filepath.Dir(m.settingsPath), 0o700); err != nil {
		return errors.NewFileProcessingError("settings", m.settingsPath, "could not create settings directory", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return errors.NewFileProcessingError("settings", m.settingsPath, "could not encode settings", err)
	}

	if err := m.fs.WriteFile(m.settingsPath, data, 0o600); err != nil {
		return errors.NewFileProcessingError("settings", m.settingsPath, "could not write settings file", err)
	}

	return nil
}

// Apply overlays persisted preferences onto the limit table. Only the
// extension allow-list may be narrowed; unknown or wider values are ignored.
func (s *Settings) Apply(limits Limits) Limits {
	if len(s.AllowedExtensions) > 0 {
		narrowed := make([]string, 0, len(s.AllowedExtensions))
		for _, ext := range s.AllowedExtensions {
			for _, allowed := range limits.AllowedExtensions {
				if ext == allowed {
					narrowed = append(narrowed, ext)
					break
				}
			}
		}
		if len(narrowed) > 0 {
			limits.AllowedExtensions = narrowed
		}
	}
	return limits
}
