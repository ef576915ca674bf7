package commands

import (
	"context"
	"log/slog"

	"themesmith/internal/domain"
	"themesmith/internal/fileops"
)

// InspectCommand reports a theme file's metadata and parsed color table.
type InspectCommand struct {
	files  *fileops.Service
	logger *slog.Logger
}

// NewInspectCommand creates a new inspect command.
func NewInspectCommand(files *fileops.Service, logger *slog.Logger) *InspectCommand {
	return &InspectCommand{files: files, logger: logger}
}

// InspectRequest contains the parameters for the inspect command.
type InspectRequest struct {
	Path        string
	BaseDir     string
	IncludeHash bool
}

// InspectResult pairs file metadata with the parsed theme content.
type InspectResult struct {
	Metadata domain.FileMetadata
	Theme    domain.ThemeParseResult
}

// Execute loads metadata and parses the file.
func (c *InspectCommand) Execute(ctx context.Context, req InspectRequest) (InspectResult, error) {
	c.logger.InfoContext(ctx, "inspecting theme file", "path", req.Path, "hash", req.IncludeHash)

	meta, err := c.files.GetMetadata(ctx, req.Path, fileops.Options{
		BaseDir:     req.BaseDir,
		IncludeHash: req.IncludeHash,
	})
	if err != nil {
		return InspectResult{}, err
	}

	parsed, err := c.files.ParseThemeFile(ctx, req.Path, fileops.Options{BaseDir: req.BaseDir})
	if err != nil {
		return InspectResult{}, err
	}

	return InspectResult{Metadata: meta, Theme: parsed}, nil
}
