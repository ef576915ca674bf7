package security

import (
	stderrors "errors"
	"log/slog"
	"regexp"

	"themesmith/internal/config"
	"themesmith/internal/domain"
	"themesmith/internal/errors"
)

var versionChars = regexp.MustCompile(`[^0-9a-zA-Z.\-]`)

var _ domain.SecurityGateway = (*Service)(nil)

// Service composes the path validator, input sanitizer, and resource limiter
// into the single validation gateway the rest of the tool goes through.
// It fails fast on the first violated invariant and never returns partially
// sanitized data.
type Service struct {
	validator *PathValidator
	sanitizer *InputSanitizer
	limiter   *ResourceLimiter
	limits    config.Limits
	logger    *slog.Logger
}

// NewService creates the security gateway with its own validator, sanitizer,
// and limiter. Callers own the instance; there is no package-level singleton.
func NewService(fs domain.FileSystemAdapter, limits config.Limits, logger *slog.Logger) *Service {
	validator := NewPathValidator(fs, limits)
	return &Service{
		validator: validator,
		sanitizer: NewInputSanitizer(validator),
		limiter:   NewResourceLimiter(limits, logger),
		limits:    limits,
		logger:    logger,
	}
}

// Validator exposes the underlying path validator for read-only checks.
func (s *Service) Validator() *PathValidator {
	return s.validator
}

// Sanitizer exposes the underlying input sanitizer.
func (s *Service) Sanitizer() *InputSanitizer {
	return s.sanitizer
}

// ValidateFilePath vets a path for reading: quota, sanitization, traversal,
// extension allow-list, and safe-root location, in that order. The read
// counter is only incremented once every gate has passed, so rejected paths
// never consume quota.
func (s *Service) ValidateFilePath(path, baseDir string) (string, error) {
	if !s.limiter.CanPerform(domain.KindFileReads) {
		return "", errors.NewRateLimitError(string(domain.KindFileReads), s.limiter.Limit(domain.KindFileReads))
	}

	vetted, err := s.sanitizer.SanitizePath(path, baseDir)
	if err != nil {
		return "", err
	}
	if !s.validator.ValidateExtension(vetted) {
		return "", errors.NewSecurityError("extension", "file type is not allowed")
	}
	if !s.validator.IsPathSafe(vetted) {
		return "", errors.NewSecurityError("safe-root", "path is outside the allowed locations")
	}

	s.limiter.Track(domain.KindFileReads)
	return vetted, nil
}

// ValidateOutputPath vets a destination path for writing. The extension
// allow-list is for input theme files and does not apply here; traversal and
// safe-root checks do.
func (s *Service) ValidateOutputPath(path, baseDir string) (string, error) {
	if !s.limiter.CanPerform(domain.KindFileWrites) {
		return "", errors.NewRateLimitError(string(domain.KindFileWrites), s.limiter.Limit(domain.KindFileWrites))
	}

	vetted, err := s.sanitizer.SanitizePath(path, baseDir)
	if err != nil {
		return "", err
	}
	if !s.validator.IsPathSafe(vetted) {
		return "", errors.NewSecurityError("safe-root", "path is outside the allowed locations")
	}

	s.limiter.Track(domain.KindFileWrites)
	return vetted, nil
}

// ValidateDirPath vets a directory path for reading. Directories carry no
// extension, so only sanitization, traversal, and safe-root checks apply.
func (s *Service) ValidateDirPath(path, baseDir string) (string, error) {
	if !s.limiter.CanPerform(domain.KindFileReads) {
		return "", errors.NewRateLimitError(string(domain.KindFileReads), s.limiter.Limit(domain.KindFileReads))
	}

	vetted, err := s.sanitizer.SanitizePath(path, baseDir)
	if err != nil {
		return "", err
	}
	if !s.validator.IsPathSafe(vetted) {
		return "", errors.NewSecurityError("safe-root", "path is outside the allowed locations")
	}

	s.limiter.Track(domain.KindFileReads)
	return vetted, nil
}

// AcquireOperationSlot reserves a concurrency slot for an in-flight operation.
func (s *Service) AcquireOperationSlot() error {
	if !s.limiter.CanPerform(domain.KindConcurrentOps) {
		return errors.NewRateLimitError(string(domain.KindConcurrentOps), s.limiter.Limit(domain.KindConcurrentOps))
	}
	s.limiter.Track(domain.KindConcurrentOps)
	return nil
}

// ReleaseOperationSlot frees a slot taken by AcquireOperationSlot.
func (s *Service) ReleaseOperationSlot() {
	s.limiter.Release(domain.KindConcurrentOps)
}

// ValidateThemeInput sanitizes each field of the theme configuration
// independently. Omitted fields come back as empty strings.
func (s *Service) ValidateThemeInput(input domain.ThemeInput) (domain.SanitizedTheme, error) {
	var out domain.SanitizedTheme

	if input.Name != "" {
		processed, err := s.sanitizer.Process(input.Name, s.limits.MaxNameLength)
		if err != nil {
			return domain.SanitizedTheme{}, fieldError("name", err)
		}
		out.Name = s.sanitizer.SanitizeName(processed)
	}
	if input.Description != "" {
		processed, err := s.sanitizer.Process(input.Description, s.limits.MaxDescriptionLength)
		if err != nil {
			return domain.SanitizedTheme{}, fieldError("description", err)
		}
		out.Description = processed
	}
	if input.Version != "" {
		processed, err := s.sanitizer.Process(input.Version, s.limits.MaxVersionLength)
		if err != nil {
			return domain.SanitizedTheme{}, fieldError("version", err)
		}
		out.Version = versionChars.ReplaceAllString(processed, "")
	}
	if input.Publisher != "" {
		processed, err := s.sanitizer.Process(input.Publisher, s.limits.MaxPublisherLength)
		if err != nil {
			return domain.SanitizedTheme{}, fieldError("publisher", err)
		}
		out.Publisher = s.sanitizer.SanitizeName(processed)
	}
	if input.OutputPath != "" {
		vetted, err := s.sanitizer.SanitizePath(input.OutputPath, "")
		if err != nil {
			return domain.SanitizedTheme{}, err
		}
		if !s.validator.IsPathSafe(vetted) {
			return domain.SanitizedTheme{}, errors.NewSecurityError("safe-root", "output path is outside the allowed locations")
		}
		out.OutputPath = vetted
	}

	return out, nil
}

// Stats exposes the current quota counters and limits.
func (s *Service) Stats() domain.SecurityStats {
	return s.limiter.Stats()
}

// Cleanup stops the limiter's reset timer. Idempotent.
func (s *Service) Cleanup() {
	s.limiter.Cleanup()
}

// fieldError rewrites a sanitizer error to carry the theme field name.
func fieldError(field string, err error) error {
	var verr *errors.ValidationError
	if stderrors.As(err, &verr) {
		return errors.NewValidationError(field, verr.Value, verr.Rule, verr.Message)
	}
	return err
}
