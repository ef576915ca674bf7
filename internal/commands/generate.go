package commands

import (
	"context"
	"log/slog"

	"themesmith/internal/domain"
	"themesmith/internal/fileops"
	"themesmith/internal/recent"
)

// GenerateCommand converts a theme file into an extension bundle and records
// the source file in the recent list.
type GenerateCommand struct {
	files  *fileops.Service
	recent *recent.Store
	logger *slog.Logger
}

// NewGenerateCommand creates a new generate command.
func NewGenerateCommand(files *fileops.Service, store *recent.Store, logger *slog.Logger) *GenerateCommand {
	return &GenerateCommand{files: files, recent: store, logger: logger}
}

// GenerateRequest contains the parameters for the generate command.
type GenerateRequest struct {
	Input     domain.ThemeInput
	ThemePath string
	BaseDir   string
	Progress  domain.ProgressFunc
}

// Execute generates the bundle. Recording the source in the recent list is
// best-effort; a store failure never fails a completed conversion.
func (c *GenerateCommand) Execute(ctx context.Context, req GenerateRequest) (fileops.BundleResult, error) {
	c.logger.InfoContext(ctx, "generating extension bundle",
		"theme", req.ThemePath,
		"name", req.Input.Name)

	result, err := c.files.GenerateExtensionBundle(ctx, req.Input, req.ThemePath, fileops.Options{
		BaseDir:  req.BaseDir,
		Progress: req.Progress,
	})
	if err != nil {
		return fileops.BundleResult{}, err
	}

	if recErr := c.recent.Add(req.ThemePath); recErr != nil {
		c.logger.WarnContext(ctx, "could not record recent file", "error", recErr)
	}

	c.logger.InfoContext(ctx, "bundle generated",
		"dir", result.BundleDir,
		"artifacts", len(result.Artifacts))
	return result, nil
}
