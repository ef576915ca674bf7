package fileops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themesmith/internal/config"
	"themesmith/internal/errors"
	"themesmith/internal/theme"
)

const sampleTheme = `# gruvbox-ish scheme
background = #282828
foreground: #ebdbb2
cursor = #fe8019
palette = 0 = #1d2021
palette = 1 = #cc241d
`

func TestValidateThemeFile(t *testing.T) {
	svc, base := newTestService(t, nil)
	writeFixture(t, base, "theme.conf", []byte(sampleTheme))

	result, err := svc.ValidateThemeFile(context.Background(), "theme.conf", Options{BaseDir: base})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Error)
}

func TestValidateThemeFileMissing(t *testing.T) {
	svc, base := newTestService(t, nil)

	result, err := svc.ValidateThemeFile(context.Background(), "absent.conf", Options{BaseDir: base})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, "File not found", result.Error)
}

func TestValidateThemeFileDirectory(t *testing.T) {
	svc, base := newTestService(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "dir.conf"), 0o755))

	result, err := svc.ValidateThemeFile(context.Background(), "dir.conf", Options{BaseDir: base})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, "Path is a directory", result.Error)
}

func TestValidateThemeFileCommentOnly(t *testing.T) {
	svc, base := newTestService(t, nil)
	writeFixture(t, base, "theme.conf", []byte("# just a comment\n// another\n"))

	result, err := svc.ValidateThemeFile(context.Background(), "theme.conf", Options{BaseDir: base})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, theme.NoColorsError, result.Error)
}

func TestValidateThemeFileMostlyMalformed(t *testing.T) {
	svc, base := newTestService(t, nil)
	writeFixture(t, base, "theme.conf", []byte("background = #282828\ncursor = notacolor\naccent = #zzz\n"))

	result, err := svc.ValidateThemeFile(context.Background(), "theme.conf", Options{BaseDir: base})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, "Too many malformed color definitions", result.Error)
}

func TestValidateThemeFileOversized(t *testing.T) {
	svc, base := newTestService(t, func(l *config.Limits) {
		l.MaxThemeFileSize = 16
	})
	writeFixture(t, base, "theme.conf", []byte(sampleTheme))

	result, err := svc.ValidateThemeFile(context.Background(), "theme.conf", Options{BaseDir: base})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, "File exceeds the maximum theme size", result.Error)
}

func TestParseThemeFile(t *testing.T) {
	svc, base := newTestService(t, nil)
	writeFixture(t, base, "theme.conf", []byte(sampleTheme))

	result, err := svc.ParseThemeFile(context.Background(), "theme.conf", Options{BaseDir: base})
	require.NoError(t, err)
	assert.Equal(t, "#282828", result.Colors["background"])
	assert.Equal(t, "#ebdbb2", result.Colors["foreground"])
	assert.Equal(t, "#1d2021", result.Colors["color0"])
	assert.Equal(t, "#cc241d", result.Colors["color1"])
	assert.Empty(t, result.InvalidLines)
}

func TestParseThemeFileRejectsInvalidContent(t *testing.T) {
	svc, base := newTestService(t, nil)
	writeFixture(t, base, "theme.conf", []byte("# nothing here\n"))

	_, err := svc.ParseThemeFile(context.Background(), "theme.conf", Options{BaseDir: base})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestParseThemeFileRejectsTraversal(t *testing.T) {
	svc, base := newTestService(t, nil)

	_, err := svc.ParseThemeFile(context.Background(), "../../etc/passwd", Options{BaseDir: base})
	require.Error(t, err)
	assert.True(t, errors.IsSecurity(err))
}
