// Package testutil holds shared test doubles. The fakes here wrap the real
// os-backed adapter rather than reimplementing it, so behavior stays honest
// while individual calls can be slowed down or forced to fail.
package testutil

import (
	"io"
	"os"
	"time"

	"themesmith/internal/domain"
)

// SlowFS delegates to an inner adapter, sleeping before each read-side call.
// It exists so timeout and cancellation paths can be exercised without huge
// fixture files.
type SlowFS struct {
	domain.FileSystemAdapter
	Delay time.Duration
}

func (s *SlowFS) ReadFile(path string) ([]byte, error) {
	time.Sleep(s.Delay)
	return s.FileSystemAdapter.ReadFile(path)
}

func (s *SlowFS) Open(path string) (io.ReadCloser, error) {
	time.Sleep(s.Delay)
	return s.FileSystemAdapter.Open(path)
}

func (s *SlowFS) Stat(path string) (os.FileInfo, error) {
	time.Sleep(s.Delay)
	return s.FileSystemAdapter.Stat(path)
}

// HomeFS delegates to an inner adapter, reporting Home as the user's home
// directory. HomeErr, when set, makes home resolution fail so fallback paths
// can be tested.
type HomeFS struct {
	domain.FileSystemAdapter
	Home    string
	HomeErr error
}

func (h *HomeFS) UserHomeDir() (string, error) {
	if h.HomeErr != nil {
		return "", h.HomeErr
	}
	return h.Home, nil
}

// FailingFS delegates to an inner adapter but fails writes with Err once
// AfterWrites successful writes have gone through, letting tests hit a
// partial failure mid-sequence.
type FailingFS struct {
	domain.FileSystemAdapter
	Err         error
	AfterWrites int

	writes int
}

func (f *FailingFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	if f.writes >= f.AfterWrites {
		return f.Err
	}
	f.writes++
	return f.FileSystemAdapter.WriteFile(path, data, perm)
}
