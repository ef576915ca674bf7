// Package errors provides the closed error taxonomy for themesmith.
//
// Every failure surfaced by the core falls into one of three variants:
// - ValidationError: malformed, oversized, or empty input; recoverable by re-prompting
// - SecurityError: traversal, disallowed extension, unsafe location, or quota exhaustion; never retried
// - FileProcessingError: I/O failure, timeout, or cancellation; possibly transient
//
// The UI boundary matches these exhaustively: validation and security messages
// are shown verbatim, file-processing messages with a generic retry suggestion.
package errors

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// Error categories for themesmith operations
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrSecurity       = errors.New("security violation")
	ErrFileProcessing = errors.New("file processing error")
	ErrTimeout        = errors.New("operation timed out")
	ErrCancelled      = errors.New("operation cancelled")
	ErrRateLimited    = errors.New("resource limit exceeded")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Value   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidInput)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// IsValidation checks if an error is validation-related.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// SecurityError represents rejected paths, disallowed extensions, unsafe
// locations, and exhausted resource quotas. Security rejections are terminal:
// the caller must not retry with the same input.
type SecurityError struct {
	Check   string // which gate rejected: "traversal", "extension", "safe-root", "quota", ...
	Message string
	Err     error
}

func (e *SecurityError) Error() string {
	if e.Check != "" {
		return fmt.Sprintf("security error (%s): %s", e.Check, e.Message)
	}
	return fmt.Sprintf("security error: %s", e.Message)
}

func (e *SecurityError) Unwrap() error {
	return e.Err
}

func (e *SecurityError) Is(target error) bool {
	if errors.Is(target, ErrSecurity) {
		return true
	}
	return e.Check == "quota" && errors.Is(target, ErrRateLimited)
}

// NewSecurityError creates a new security error for the named check.
func NewSecurityError(check, message string) *SecurityError {
	return &SecurityError{
		Check:   check,
		Message: message,
	}
}

// NewRateLimitError creates a security error for an exhausted operation quota.
func NewRateLimitError(kind string, limit int) *SecurityError {
	return &SecurityError{
		Check:   "quota",
		Message: fmt.Sprintf("limit of %d %s operations reached, try again later", limit, kind),
		Err:     ErrRateLimited,
	}
}

// IsSecurity checks if an error is security-related.
func IsSecurity(err error) bool {
	return errors.Is(err, ErrSecurity)
}

// IsRateLimited checks if an error represents quota exhaustion.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// FileProcessingError wraps lower-level filesystem failures. The caller-visible
// message is scrubbed: it carries the operation name, the base filename, and a
// short description, never raw OS error text or internal absolute paths. The
// original cause remains reachable through Unwrap for logging and matching.
type FileProcessingError struct {
	Op      string
	Path    string // full path, kept for logs; Error() prints only the base name
	Message string
	Err     error
}

func (e *FileProcessingError) Error() string {
	name := filepath.Base(e.Path)
	if name == "." || name == string(filepath.Separator) {
		name = ""
	}
	if name != "" {
		return fmt.Sprintf("%s failed for '%s': %s", e.Op, name, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

func (e *FileProcessingError) Unwrap() error {
	return e.Err
}

func (e *FileProcessingError) Is(target error) bool {
	return errors.Is(target, ErrFileProcessing)
}

// NewFileProcessingError creates a new file processing error with a scrubbed message.
func NewFileProcessingError(op, path, message string, err error) *FileProcessingError {
	return &FileProcessingError{
		Op:      op,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// NewTimeoutError creates a file processing error for an operation that
// exceeded its configured timeout. The message states the duration.
func NewTimeoutError(op, path string, timeout time.Duration) *FileProcessingError {
	return &FileProcessingError{
		Op:      op,
		Path:    path,
		Message: fmt.Sprintf("timed out after %s", timeout),
		Err:     ErrTimeout,
	}
}

// NewCancelledError creates a file processing error for a cancelled operation.
func NewCancelledError(op, path string) *FileProcessingError {
	return &FileProcessingError{
		Op:      op,
		Path:    path,
		Message: "cancelled",
		Err:     ErrCancelled,
	}
}

// IsFileProcessing checks if an error is a wrapped filesystem failure.
func IsFileProcessing(err error) bool {
	return errors.Is(err, ErrFileProcessing)
}

// IsTimeout checks if an error represents a timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCancelled checks if an error represents a cancelled operation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// Join creates a single error from multiple errors, filtering out nils.
func Join(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	if len(nonNil) == 0 {
		return nil
	}
	if len(nonNil) == 1 {
		return nonNil[0]
	}
	return errors.Join(nonNil...)
}
