// Package commands holds the application commands behind the CLI, each a
// small object with injected dependencies and a single Execute method.
package commands

import (
	"context"
	"log/slog"

	"themesmith/internal/domain"
	"themesmith/internal/fileops"
)

// ValidateCommand checks a theme file for convertibility.
type ValidateCommand struct {
	files  *fileops.Service
	logger *slog.Logger
}

// NewValidateCommand creates a new validate command.
func NewValidateCommand(files *fileops.Service, logger *slog.Logger) *ValidateCommand {
	return &ValidateCommand{files: files, logger: logger}
}

// ValidateRequest contains the parameters for the validate command.
type ValidateRequest struct {
	Path    string
	BaseDir string
}

// Execute runs the validation and returns its outcome. A structurally
// invalid theme is a result, not an error; errors are reserved for rejected
// paths and I/O failures.
func (c *ValidateCommand) Execute(ctx context.Context, req ValidateRequest) (domain.ThemeValidation, error) {
	c.logger.InfoContext(ctx, "validating theme file", "path", req.Path)

	result, err := c.files.ValidateThemeFile(ctx, req.Path, fileops.Options{BaseDir: req.BaseDir})
	if err != nil {
		return domain.ThemeValidation{}, err
	}

	c.logger.InfoContext(ctx, "validation finished",
		"path", req.Path,
		"valid", result.IsValid,
		"warnings", len(result.Warnings))
	return result, nil
}
