package domain

import (
	"io"
	"os"
	"time"
)

// FileSystemAdapter defines the interface for file operations.
// Streaming operations use the Open/Create handles so large files never need
// to be held in memory at once.
type FileSystemAdapter interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Open(path string) (io.ReadCloser, error)
	Create(path string, perm os.FileMode) (io.WriteCloser, error)
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	RemoveAll(path string) error
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	Chmod(path string, perm os.FileMode) error
	Chtimes(path string, atime, mtime time.Time) error
	UserHomeDir() (string, error)
	Getwd() (string, error)
	TempDir() string
}
