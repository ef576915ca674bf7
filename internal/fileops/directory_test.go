package fileops

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themesmith/internal/domain"
)

func entryNames(entries []domain.DirectoryEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestListDirectorySkipsHiddenByDefault(t *testing.T) {
	svc, base := newTestService(t, nil)
	writeFixture(t, base, "a.txt", []byte("a"))
	writeFixture(t, base, "b.conf", []byte("b"))
	writeFixture(t, base, ".hidden", []byte("h"))

	entries, err := svc.ListDirectory(context.Background(), ".", Options{BaseDir: base})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.conf"}, entryNames(entries))

	entries, err = svc.ListDirectory(context.Background(), ".", Options{BaseDir: base, IncludeHidden: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.conf", ".hidden"}, entryNames(entries))
}

func TestListDirectoryRecursive(t *testing.T) {
	svc, base := newTestService(t, nil)
	writeFixture(t, base, "top.txt", []byte("t"))
	writeFixture(t, base, "sub/inner.txt", []byte("i"))
	writeFixture(t, base, "sub/deeper/leaf.txt", []byte("l"))

	entries, err := svc.ListDirectory(context.Background(), ".", Options{BaseDir: base, Recursive: true})
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"top.txt", "sub", "inner.txt", "deeper", "leaf.txt"},
		entryNames(entries))
}

func TestListDirectoryFilter(t *testing.T) {
	svc, base := newTestService(t, nil)
	writeFixture(t, base, "keep.conf", []byte("k"))
	writeFixture(t, base, "drop.txt", []byte("d"))
	writeFixture(t, base, "sub/also-drop.txt", []byte("d"))

	entries, err := svc.ListDirectory(context.Background(), ".", Options{
		BaseDir:   base,
		Recursive: true,
		Filter: func(e domain.DirectoryEntry) bool {
			return e.Metadata.IsFile && strings.HasSuffix(e.Name, ".conf")
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.conf"}, entryNames(entries))
}

func TestListDirectoryEntriesCarryMetadata(t *testing.T) {
	svc, base := newTestService(t, nil)
	writeFixture(t, base, "meta.txt", []byte("12345"))

	entries, err := svc.ListDirectory(context.Background(), ".", Options{BaseDir: base})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	meta := entries[0].Metadata
	assert.Equal(t, int64(5), meta.Size)
	assert.True(t, meta.IsFile)
	assert.False(t, meta.ModTime.IsZero())
}
