package security

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themesmith/internal/errors"
)

func newSanitizer(t *testing.T) *InputSanitizer {
	t.Helper()
	return NewInputSanitizer(newValidator(t))
}

func TestStripRemovesMetacharacters(t *testing.T) {
	s := newSanitizer(t)

	assert.Equal(t, "rm -rf tmp", s.Strip("rm -rf tmp; echo done")[:10])
	assert.Equal(t, "hello", s.Strip("he|l&l$o"))
	assert.Equal(t, "theme", s.Strip("`theme`"))
	assert.Equal(t, "plain text", s.Strip("plain text"))
}

func TestProcess(t *testing.T) {
	s := newSanitizer(t)

	got, err := s.Process("  My Theme  ", 50)
	require.NoError(t, err)
	assert.Equal(t, "My Theme", got)

	_, err = s.Process("", 50)
	assert.True(t, errors.IsValidation(err))

	// Empty after stripping is also a failure.
	_, err = s.Process(";|&", 50)
	assert.True(t, errors.IsValidation(err))

	_, err = s.Process(strings.Repeat("a", 51), 50)
	assert.True(t, errors.IsValidation(err))
}

func TestSanitizeNameIdempotent(t *testing.T) {
	s := newSanitizer(t)

	inputs := []string{
		"My  Cool   Theme!",
		"theme@#$%name",
		"  spaced   out  ",
		"already-clean_name 1",
	}
	for _, input := range inputs {
		once := s.SanitizeName(input)
		twice := s.SanitizeName(once)
		assert.Equal(t, once, twice, "sanitizeName must be idempotent for %q", input)
	}

	assert.Equal(t, "My Cool Theme", s.SanitizeName("My  Cool   Theme!"))
}

func TestSanitizePath(t *testing.T) {
	s := newSanitizer(t)
	base := t.TempDir()

	got, err := s.SanitizePath("theme.conf", base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "theme.conf"), got)

	_, err = s.SanitizePath("../../etc/passwd", base)
	require.Error(t, err)
	assert.True(t, errors.IsSecurity(err))
}
