// Package filesystem provides the os-backed FileSystemAdapter implementation.
package filesystem

import (
	"io"
	"os"
	"time"
)

// Adapter provides file system operations backed by the os package.
type Adapter struct{}

// New creates a new filesystem adapter.
func New() *Adapter {
	return &Adapter{}
}

// ReadFile reads a file from disk.
func (a *Adapter) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file.
func (a *Adapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Open opens a file for streamed reading.
func (a *Adapter) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Create opens a file for streamed writing, truncating any existing content.
func (a *Adapter) Create(path string, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
}

// MkdirAll creates a directory and all necessary parents.
func (a *Adapter) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove deletes a file or empty directory.
func (a *Adapter) Remove(path string) error {
	return os.Remove(path)
}

// RemoveAll deletes a path and any children it contains.
func (a *Adapter) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Stat returns file info, following symlinks.
func (a *Adapter) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file info without following symlinks.
func (a *Adapter) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// ReadDir lists directory entries.
func (a *Adapter) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// Chmod changes the file permissions.
func (a *Adapter) Chmod(path string, perm os.FileMode) error {
	return os.Chmod(path, perm)
}

// Chtimes changes the access and modification times.
func (a *Adapter) Chtimes(path string, atime, mtime time.Time) error {
	return os.Chtimes(path, atime, mtime)
}

// UserHomeDir returns the user's home directory.
func (a *Adapter) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// Getwd returns the current working directory.
func (a *Adapter) Getwd() (string, error) {
	return os.Getwd()
}

// TempDir returns the temporary directory.
func (a *Adapter) TempDir() string {
	return os.TempDir()
}
