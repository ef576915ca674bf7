package security

import (
	"regexp"
	"strings"

	"themesmith/internal/errors"
)

// Character classes stripped or kept by the sanitizer.
var (
	metaChars  = regexp.MustCompile("[;&|`$<>(){}\\[\\]'\"\\\\]")
	nameChars  = regexp.MustCompile(`[^a-zA-Z0-9 _-]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// InputSanitizer cleanses user-supplied text and enforces length limits.
// All methods are pure over strings.
type InputSanitizer struct {
	validator *PathValidator
}

// NewInputSanitizer creates an input sanitizer backed by the given path validator.
func NewInputSanitizer(validator *PathValidator) *InputSanitizer {
	return &InputSanitizer{validator: validator}
}

// Strip removes the shell and path metacharacter class from the input.
func (s *InputSanitizer) Strip(input string) string {
	return metaChars.ReplaceAllString(input, "")
}

// Process trims and strips the input, failing when the result is empty or
// exceeds maxLength.
func (s *InputSanitizer) Process(input string, maxLength int) (string, error) {
	cleaned := s.Strip(strings.TrimSpace(input))
	if cleaned == "" {
		return "", errors.NewValidationError("input", input, "required", "value is empty after sanitization")
	}
	if len(cleaned) > maxLength {
		return "", errors.NewValidationError("input", "", "max_length", "value exceeds maximum length")
	}
	return cleaned, nil
}

// SanitizeName restricts the input to alphanumerics, space, hyphen, and
// underscore, and collapses runs of whitespace. Idempotent.
func (s *InputSanitizer) SanitizeName(input string) string {
	cleaned := nameChars.ReplaceAllString(input, "")
	cleaned = whitespace.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// SanitizePath processes the input as text and then validates it as a path
// relative to baseDir, returning the resolved absolute path.
func (s *InputSanitizer) SanitizePath(input, baseDir string) (string, error) {
	processed, err := s.Process(input, s.validator.maxPathLength)
	if err != nil {
		return "", err
	}
	return s.validator.Validate(processed, baseDir)
}
