package commands

import (
	"context"
	"log/slog"

	"themesmith/internal/recent"
)

// RecentCommand lists or clears the recently converted theme files.
type RecentCommand struct {
	recent *recent.Store
	logger *slog.Logger
}

// NewRecentCommand creates a new recent command.
func NewRecentCommand(store *recent.Store, logger *slog.Logger) *RecentCommand {
	return &RecentCommand{recent: store, logger: logger}
}

// RecentRequest contains the parameters for the recent command.
type RecentRequest struct {
	Clear bool
}

// Execute returns the recent paths, most recent first. With Clear set the
// store is emptied and the result is empty.
func (c *RecentCommand) Execute(ctx context.Context, req RecentRequest) ([]string, error) {
	if req.Clear {
		c.logger.InfoContext(ctx, "clearing recent files")
		if err := c.recent.Clear(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return c.recent.List()
}
