package domain

// OperationKind names a tracked resource-limited operation class.
type OperationKind string

const (
	KindFileReads     OperationKind = "fileReads"
	KindFileWrites    OperationKind = "fileWrites"
	KindConcurrentOps OperationKind = "concurrentOps"
)

// SecurityGateway is the single validation entry point for untrusted paths and
// theme fields. Implementations must fail fast on the first violated invariant
// and never return partially sanitized data.
type SecurityGateway interface {
	// ValidateFilePath returns the vetted absolute path, or a typed error.
	// baseDir defaults to the working directory when empty.
	ValidateFilePath(path, baseDir string) (string, error)

	// ValidateOutputPath vets a destination path for writing. Extension
	// checks apply only to file targets.
	ValidateOutputPath(path, baseDir string) (string, error)

	// ValidateDirPath vets a directory path for reading; directories carry
	// no extension, so only traversal and safe-root checks apply.
	ValidateDirPath(path, baseDir string) (string, error)

	// AcquireOperationSlot reserves a concurrency slot, or returns a typed
	// error when the configured limit is reached.
	AcquireOperationSlot() error

	// ReleaseOperationSlot frees a slot taken by AcquireOperationSlot.
	ReleaseOperationSlot()

	// ValidateThemeInput sanitizes each field independently.
	ValidateThemeInput(input ThemeInput) (SanitizedTheme, error)

	// Stats exposes quota counters and limits.
	Stats() SecurityStats

	// Cleanup releases background resources. Idempotent.
	Cleanup()
}

// SecurityStats reveals quota state; it is the only sanctioned channel for it.
type SecurityStats struct {
	Counts map[OperationKind]int
	Limits map[OperationKind]int
}
