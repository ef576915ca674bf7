// Package security implements the validation gateway for untrusted paths and
// text: path resolution against a base directory, extension and safe-root
// checks, string cleansing, and fixed-window operation quotas.
package security

import (
	"path/filepath"
	"strings"

	"themesmith/internal/config"
	"themesmith/internal/domain"
	"themesmith/internal/errors"
)

// PathValidator resolves and validates candidate paths against a base
// directory and an extension allow-list.
//
// Confusable Unicode sequences are treated as opaque bytes: no normalization
// happens before the traversal check. Inputs that normalize to traversal
// sequences under NFKC are not detected here.
type PathValidator struct {
	fs                domain.FileSystemAdapter
	maxPathLength     int
	allowedExtensions []string
	safeRoots         []string
}

// NewPathValidator creates a path validator. Safe roots (home, working
// directory, temp) are resolved once at construction.
func NewPathValidator(fs domain.FileSystemAdapter, limits config.Limits) *PathValidator {
	var roots []string
	if home, err := fs.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Clean(home))
	}
	if cwd, err := fs.Getwd(); err == nil {
		roots = append(roots, filepath.Clean(cwd))
	}
	if tmp := fs.TempDir(); tmp != "" {
		roots = append(roots, filepath.Clean(tmp))
	}

	return &PathValidator{
		fs:                fs,
		maxPathLength:     limits.MaxPathLength,
		allowedExtensions: limits.AllowedExtensions,
		safeRoots:         roots,
	}
}

// Validate resolves userPath against baseDir (working directory when empty)
// and returns the absolute path, or a typed error when the input is empty,
// oversized, contains a NUL byte, or escapes the base directory.
func (v *PathValidator) Validate(userPath, baseDir string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", errors.NewValidationError("path", userPath, "required", "path must be a non-empty string")
	}
	if len(userPath) > v.maxPathLength {
		return "", errors.NewValidationError("path", "", "max_length", "path exceeds maximum length")
	}
	if strings.ContainsRune(userPath, 0) {
		return "", errors.NewSecurityError("nul", "path contains a NUL byte")
	}

	base := baseDir
	if base == "" {
		cwd, err := v.fs.Getwd()
		if err != nil {
			return "", errors.NewFileProcessingError("validate", userPath, "could not resolve working directory", err)
		}
		base = cwd
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", errors.NewValidationError("baseDir", base, "resolvable", "base directory cannot be resolved")
	}

	var resolved string
	if filepath.IsAbs(userPath) {
		resolved = filepath.Clean(userPath)
	} else {
		resolved = filepath.Join(absBase, userPath)
	}
	if strings.ContainsRune(resolved, 0) {
		return "", errors.NewSecurityError("nul", "resolved path contains a NUL byte")
	}

	rel, err := filepath.Rel(absBase, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.NewSecurityError("traversal", "path escapes the base directory")
	}

	return resolved, nil
}

// ValidateExtension reports whether the path's suffix matches the configured
// allow-list, case-insensitively. It never returns an error.
func (v *PathValidator) ValidateExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range v.allowedExtensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// IsPathSafe checks that the resolved path is a descendant of one of the
// fixed safe roots. This is an independent second gate so a single validator
// bug is not a full bypass.
func (v *PathValidator) IsPathSafe(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	abs = filepath.Clean(abs)
	for _, root := range v.safeRoots {
		if abs == root || strings.HasPrefix(abs, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// SafeRoots returns a copy of the configured safe roots.
func (v *PathValidator) SafeRoots() []string {
	roots := make([]string, len(v.safeRoots))
	copy(roots, v.safeRoots)
	return roots
}
