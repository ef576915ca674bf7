package security

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themesmith/internal/adapters/filesystem"
	"themesmith/internal/config"
	"themesmith/internal/errors"
)

func newValidator(t *testing.T) *PathValidator {
	t.Helper()
	return NewPathValidator(filesystem.New(), config.DefaultLimits())
}

func TestValidateResolvesRelativePath(t *testing.T) {
	v := newValidator(t)
	base := t.TempDir()

	got, err := v.Validate("theme.conf", base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "theme.conf"), got)
}

func TestValidateRejectsTraversal(t *testing.T) {
	v := newValidator(t)
	base := t.TempDir()

	cases := []string{
		"../../etc/passwd",
		"..",
		"../sibling/theme.conf",
		"nested/../../escape.conf",
	}
	for _, input := range cases {
		_, err := v.Validate(input, base)
		require.Error(t, err, "input %q must be rejected", input)
		assert.True(t, errors.IsSecurity(err), "input %q must fail the security gate", input)
	}
}

func TestValidateAllowsDotDotWithinBase(t *testing.T) {
	v := newValidator(t)
	base := t.TempDir()

	// Goes down and back up but never above base.
	got, err := v.Validate("sub/../theme.conf", base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "theme.conf"), got)
}

func TestValidateRejectsEmptyAndOversized(t *testing.T) {
	v := newValidator(t)
	base := t.TempDir()

	_, err := v.Validate("", base)
	assert.True(t, errors.IsValidation(err))

	_, err = v.Validate("   ", base)
	assert.True(t, errors.IsValidation(err))

	long := make([]byte, config.DefaultLimits().MaxPathLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = v.Validate(string(long), base)
	assert.True(t, errors.IsValidation(err))
}

func TestValidateRejectsNulByte(t *testing.T) {
	v := newValidator(t)

	_, err := v.Validate("theme\x00.conf", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsSecurity(err))
}

func TestValidateExtension(t *testing.T) {
	v := newValidator(t)

	assert.True(t, v.ValidateExtension("a.conf"))
	assert.True(t, v.ValidateExtension("A.CONF"))
	assert.True(t, v.ValidateExtension("/tmp/x.Theme"))
	assert.False(t, v.ValidateExtension("a.exe"))
	assert.False(t, v.ValidateExtension("a.json"))
	assert.False(t, v.ValidateExtension("noextension"))
}

func TestIsPathSafe(t *testing.T) {
	v := newValidator(t)

	assert.True(t, v.IsPathSafe(filepath.Join(t.TempDir(), "x.conf")))
	assert.False(t, v.IsPathSafe("/etc/passwd"))
	assert.False(t, v.IsPathSafe("/"))
}

func TestSafeRootsCopy(t *testing.T) {
	v := newValidator(t)

	roots := v.SafeRoots()
	require.NotEmpty(t, roots)
	roots[0] = "/mutated"
	assert.NotEqual(t, "/mutated", v.SafeRoots()[0])
}
