package fileops

import (
	"time"

	"themesmith/internal/domain"
)

// Options tunes a single file operation. The zero value gives buffered I/O,
// the default timeout, and no progress reporting.
type Options struct {
	// Timeout overrides the configured default when positive.
	Timeout time.Duration

	// BaseDir anchors relative paths; the working directory when empty.
	BaseDir string

	// Progress receives synchronous progress events for streamed operations.
	Progress domain.ProgressFunc

	// ForceStream switches to chunked I/O even below the size threshold.
	ForceStream bool

	// IncludeHash computes a content hash in GetMetadata.
	IncludeHash bool

	// IncludeHidden lists dot-entries in ListDirectory.
	IncludeHidden bool

	// Recursive descends depth-first in ListDirectory and Delete.
	Recursive bool

	// Filter keeps only matching entries in ListDirectory.
	Filter func(domain.DirectoryEntry) bool

	// Overwrite allows Copy to replace an existing destination.
	Overwrite bool

	// PreserveTimestamps copies modification times after the data in Copy.
	PreserveTimestamps bool
}

// emit invokes the progress callback if one is configured.
func (o Options) emit(event domain.ProgressEvent) {
	if o.Progress != nil {
		o.Progress(event)
	}
}

// progressEvent builds an event with a computed percentage; total may be -1
// when unknown.
func progressEvent(op, file string, processed, total int64) domain.ProgressEvent {
	event := domain.ProgressEvent{
		BytesProcessed: processed,
		TotalBytes:     total,
		Operation:      op,
		CurrentFile:    file,
	}
	if total > 0 {
		event.Percentage = float64(processed) / float64(total) * 100
	}
	return event
}
