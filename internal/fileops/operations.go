package fileops

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"themesmith/internal/domain"
	"themesmith/internal/errors"
)

// Exists reports whether the path names an existing file or directory.
// Validation runs before any filesystem call.
func (s *Service) Exists(ctx context.Context, path string, opts Options) (bool, error) {
	vetted, err := s.security.ValidateDirPath(path, opts.BaseDir)
	if err != nil {
		return false, err
	}

	ctx, _, finish, err := s.begin(ctx, opts.Timeout)
	if err != nil {
		return false, err
	}
	defer finish()

	_, statErr := runIO(ctx, func() (os.FileInfo, error) {
		return s.fs.Stat(vetted)
	})
	if statErr != nil {
		if ctx.Err() != nil {
			return false, wrapContextErr("exists", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		if os.IsNotExist(statErr) {
			return false, nil
		}
		return false, errors.NewFileProcessingError("exists", vetted, "could not inspect path", statErr)
	}
	return true, nil
}

// GetMetadata returns size, timestamps, type flags, permission bits, and an
// optional content hash. Metadata is computed on demand and never cached.
func (s *Service) GetMetadata(ctx context.Context, path string, opts Options) (domain.FileMetadata, error) {
	var vetted string
	var err error
	if opts.IncludeHash {
		// Hashing reads content, so the full read gate applies.
		vetted, err = s.security.ValidateFilePath(path, opts.BaseDir)
	} else {
		vetted, err = s.security.ValidateDirPath(path, opts.BaseDir)
	}
	if err != nil {
		return domain.FileMetadata{}, err
	}

	ctx, _, finish, err := s.begin(ctx, opts.Timeout)
	if err != nil {
		return domain.FileMetadata{}, err
	}
	defer finish()

	info, statErr := runIO(ctx, func() (os.FileInfo, error) {
		return s.fs.Stat(vetted)
	})
	if statErr != nil {
		if ctx.Err() != nil {
			return domain.FileMetadata{}, wrapContextErr("metadata", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		return domain.FileMetadata{}, errors.NewFileProcessingError("metadata", vetted, "could not read file information", statErr)
	}

	meta := domain.FileMetadata{
		Path:        vetted,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		IsDirectory: info.IsDir(),
		IsFile:      info.Mode().IsRegular(),
		Mode:        info.Mode().Perm(),
	}
	meta.AccessTime, meta.ChangeTime = statTimes(info)

	if opts.IncludeHash && meta.IsFile {
		hash, hashErr := s.hashFile(ctx, vetted)
		if hashErr != nil {
			return domain.FileMetadata{}, hashErr
		}
		meta.Hash = hash
	}

	return meta, nil
}

func (s *Service) hashFile(ctx context.Context, path string) (string, error) {
	reader, err := s.fs.Open(path)
	if err != nil {
		return "", errors.NewFileProcessingError("metadata", path, "could not open file for hashing", err)
	}
	defer reader.Close()

	digest := xxhash.New()
	buf := make([]byte, s.limits.ChunkSize)
	for {
		if ctx.Err() != nil {
			return "", wrapContextErr("metadata", path, ctx.Err(), s.limits.DefaultTimeout)
		}
		n, readErr := reader.Read(buf)
		if n > 0 {
			_, _ = digest.Write(buf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", errors.NewFileProcessingError("metadata", path, "could not hash file content", readErr)
		}
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// ReadFile returns the file content. Files above the in-memory threshold (or
// when ForceStream is set) are read in chunks with progress reporting;
// chunked reads observe cancellation at every chunk boundary.
func (s *Service) ReadFile(ctx context.Context, path string, opts Options) ([]byte, error) {
	vetted, err := s.security.ValidateFilePath(path, opts.BaseDir)
	if err != nil {
		return nil, err
	}

	ctx, _, finish, err := s.begin(ctx, opts.Timeout)
	if err != nil {
		return nil, err
	}
	defer finish()

	info, statErr := runIO(ctx, func() (os.FileInfo, error) {
		return s.fs.Stat(vetted)
	})
	if statErr != nil {
		if ctx.Err() != nil {
			return nil, wrapContextErr("read", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		return nil, errors.NewFileProcessingError("read", vetted, "could not read file information", statErr)
	}

	if opts.ForceStream || info.Size() > s.limits.MaxInMemorySize {
		return s.streamRead(ctx, vetted, info.Size(), opts)
	}

	data, readErr := runIO(ctx, func() ([]byte, error) {
		return s.fs.ReadFile(vetted)
	})
	if readErr != nil {
		if ctx.Err() != nil {
			return nil, wrapContextErr("read", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		return nil, errors.NewFileProcessingError("read", vetted, "could not read file content", readErr)
	}
	return data, nil
}

// WriteFile writes data to the path, creating parent directories as needed.
// Payloads above the in-memory threshold (or when ForceStream is set) are
// sliced into chunks written sequentially, each awaited before the next.
func (s *Service) WriteFile(ctx context.Context, path string, data []byte, opts Options) error {
	vetted, err := s.security.ValidateOutputPath(path, opts.BaseDir)
	if err != nil {
		return err
	}

	ctx, _, finish, err := s.begin(ctx, opts.Timeout)
	if err != nil {
		return err
	}
	defer finish()

	if err := s.fs.MkdirAll(filepath.Dir(vetted), 0o755); err != nil {
		return errors.NewFileProcessingError("write", vetted, "could not create parent directory", err)
	}

	if opts.ForceStream || int64(len(data)) > s.limits.MaxInMemorySize {
		return s.streamWrite(ctx, vetted, data, opts)
	}

	_, writeErr := runIO(ctx, func() (struct{}, error) {
		return struct{}{}, s.fs.WriteFile(vetted, data, 0o644)
	})
	if writeErr != nil {
		if ctx.Err() != nil {
			return wrapContextErr("write", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		return errors.NewFileProcessingError("write", vetted, "could not write file content", writeErr)
	}
	return nil
}

// EnsureDirectoryExists creates the directory and any missing parents.
func (s *Service) EnsureDirectoryExists(ctx context.Context, path string, opts Options) error {
	vetted, err := s.security.ValidateOutputPath(path, opts.BaseDir)
	if err != nil {
		return err
	}

	ctx, _, finish, err := s.begin(ctx, opts.Timeout)
	if err != nil {
		return err
	}
	defer finish()

	_, mkErr := runIO(ctx, func() (struct{}, error) {
		return struct{}{}, s.fs.MkdirAll(vetted, 0o755)
	})
	if mkErr != nil {
		if ctx.Err() != nil {
			return wrapContextErr("mkdir", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		return errors.NewFileProcessingError("mkdir", vetted, "could not create directory", mkErr)
	}
	return nil
}

// Delete removes a file or empty directory; with Recursive set it removes a
// directory tree.
func (s *Service) Delete(ctx context.Context, path string, opts Options) error {
	vetted, err := s.security.ValidateOutputPath(path, opts.BaseDir)
	if err != nil {
		return err
	}

	ctx, _, finish, err := s.begin(ctx, opts.Timeout)
	if err != nil {
		return err
	}
	defer finish()

	_, rmErr := runIO(ctx, func() (struct{}, error) {
		if opts.Recursive {
			return struct{}{}, s.fs.RemoveAll(vetted)
		}
		return struct{}{}, s.fs.Remove(vetted)
	})
	if rmErr != nil {
		if ctx.Err() != nil {
			return wrapContextErr("delete", vetted, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		return errors.NewFileProcessingError("delete", vetted, "could not delete path", rmErr)
	}
	return nil
}
