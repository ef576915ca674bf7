package fileops

import (
	"context"
	"os"

	"themesmith/internal/domain"
	"themesmith/internal/errors"
)

// ValidateThemeFile checks a theme file end to end: existence, extension,
// size, then content. Partially malformed content yields a valid result with
// warnings; structural problems yield an invalid result, not an error.
func (s *Service) ValidateThemeFile(ctx context.Context, path string, opts Options) (domain.ThemeValidation, error) {
	vetted, err := s.security.ValidateFilePath(path, opts.BaseDir)
	if err != nil {
		return domain.ThemeValidation{}, err
	}

	ctx, _, finish, err := s.begin(ctx, opts.Timeout)
	if err != nil {
		return domain.ThemeValidation{}, err
	}
	defer finish()

	info, statErr := runIO(ctx, func() (os.FileInfo, error) {
		return s.fs.Stat(vetted)
	})
	if statErr != nil {
		if ctx.Err() != nil {
			return domain.ThemeValidation{}, wrapContextErr("validateTheme", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		if os.IsNotExist(statErr) {
			return domain.ThemeValidation{IsValid: false, Error: "File not found"}, nil
		}
		return domain.ThemeValidation{}, errors.NewFileProcessingError("validateTheme", vetted, "could not inspect file", statErr)
	}

	if info.IsDir() {
		return domain.ThemeValidation{IsValid: false, Error: "Path is a directory"}, nil
	}
	if info.Size() > s.limits.MaxThemeFileSize {
		return domain.ThemeValidation{IsValid: false, Error: "File exceeds the maximum theme size"}, nil
	}

	data, readErr := runIO(ctx, func() ([]byte, error) {
		return s.fs.ReadFile(vetted)
	})
	if readErr != nil {
		if ctx.Err() != nil {
			return domain.ThemeValidation{}, wrapContextErr("validateTheme", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		return domain.ThemeValidation{}, errors.NewFileProcessingError("validateTheme", vetted, "could not read file content", readErr)
	}

	return s.parser.Validate(string(data)), nil
}

// ParseThemeFile re-validates the file and extracts its key to hex-color
// mapping, with diagnostics for unparseable and duplicate lines.
func (s *Service) ParseThemeFile(ctx context.Context, path string, opts Options) (domain.ThemeParseResult, error) {
	vetted, err := s.security.ValidateFilePath(path, opts.BaseDir)
	if err != nil {
		return domain.ThemeParseResult{}, err
	}

	ctx, _, finish, err := s.begin(ctx, opts.Timeout)
	if err != nil {
		return domain.ThemeParseResult{}, err
	}
	defer finish()

	info, statErr := runIO(ctx, func() (os.FileInfo, error) {
		return s.fs.Stat(vetted)
	})
	if statErr != nil {
		if ctx.Err() != nil {
			return domain.ThemeParseResult{}, wrapContextErr("parseTheme", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		return domain.ThemeParseResult{}, errors.NewFileProcessingError("parseTheme", vetted, "could not inspect file", statErr)
	}
	if info.Size() > s.limits.MaxThemeFileSize {
		return domain.ThemeParseResult{}, errors.NewValidationError("theme", vetted, "max_size", "theme file exceeds the maximum size")
	}

	data, readErr := runIO(ctx, func() ([]byte, error) {
		return s.fs.ReadFile(vetted)
	})
	if readErr != nil {
		if ctx.Err() != nil {
			return domain.ThemeParseResult{}, wrapContextErr("parseTheme", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		return domain.ThemeParseResult{}, errors.NewFileProcessingError("parseTheme", vetted, "could not read file content", readErr)
	}

	content := string(data)
	validation := s.parser.Validate(content)
	if !validation.IsValid {
		return domain.ThemeParseResult{}, errors.NewValidationError("theme", vetted, "content", validation.Error)
	}

	return s.parser.Parse(content), nil
}
