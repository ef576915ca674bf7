package domain

import (
	"os"
	"time"
)

// FileMetadata describes a file or directory at the moment it was inspected.
// It is computed on demand and never cached.
type FileMetadata struct {
	Path        string
	Size        int64
	ModTime     time.Time
	AccessTime  time.Time
	ChangeTime  time.Time
	IsDirectory bool
	IsFile      bool
	Mode        os.FileMode
	Hash        string // hex xxhash64 of the content; empty unless requested
}

// ProgressEvent reports incremental progress for a long-running operation.
// It is purely informational and never affects control flow.
type ProgressEvent struct {
	BytesProcessed int64
	TotalBytes     int64 // -1 when unknown
	Percentage     float64
	Operation      string
	CurrentFile    string
}

// ProgressFunc receives progress events synchronously on the operation's goroutine.
type ProgressFunc func(ProgressEvent)

// DirectoryEntry is one result of a directory listing.
type DirectoryEntry struct {
	Name     string
	Path     string
	Metadata FileMetadata
}

// ThemeInput is the raw, untrusted theme configuration collected by the UI layer.
type ThemeInput struct {
	Name        string
	Description string
	Version     string
	Publisher   string
	OutputPath  string
}

// SanitizedTheme holds the cleansed theme fields. Omitted input fields come
// back as empty strings, never absent.
type SanitizedTheme struct {
	Name        string
	Description string
	Version     string
	Publisher   string
	OutputPath  string
}

// ThemeValidation is the outcome of validating a theme file's content.
type ThemeValidation struct {
	IsValid  bool
	Error    string
	Warnings []string
}

// ThemeParseResult is the immutable key to hex-color mapping extracted from a
// theme file, plus diagnostics for lines that could not be used.
type ThemeParseResult struct {
	Colors       map[string]string
	InvalidLines []string
	Warnings     []string
}
