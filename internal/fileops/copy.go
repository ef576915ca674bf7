package fileops

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"themesmith/internal/errors"
)

// Copy copies a file or directory tree. An existing destination is rejected
// unless Overwrite is set. Directories recurse after the destination tree is
// created; large files use the same streaming path as reads and writes.
// Timestamps are preserved after the data copy when PreserveTimestamps is set.
func (s *Service) Copy(ctx context.Context, src, dst string, opts Options) error {
	vettedSrc, err := s.security.ValidateDirPath(src, opts.BaseDir)
	if err != nil {
		return err
	}
	vettedDst, err := s.security.ValidateOutputPath(dst, opts.BaseDir)
	if err != nil {
		return err
	}

	ctx, _, finish, err := s.begin(ctx, opts.Timeout)
	if err != nil {
		return err
	}
	defer finish()

	srcInfo, statErr := runIO(ctx, func() (os.FileInfo, error) {
		return s.fs.Stat(vettedSrc)
	})
	if statErr != nil {
		if ctx.Err() != nil {
			return wrapContextErr("copy", vettedSrc, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		return errors.NewFileProcessingError("copy", vettedSrc, "could not read source", statErr)
	}

	if _, err := s.fs.Stat(vettedDst); err == nil && !opts.Overwrite {
		return errors.NewValidationError("destination", vettedDst, "no_overwrite", "destination already exists")
	}

	if srcInfo.IsDir() {
		return s.copyDir(ctx, vettedSrc, vettedDst, opts)
	}
	return s.copyFile(ctx, vettedSrc, vettedDst, srcInfo, opts)
}

func (s *Service) copyDir(ctx context.Context, src, dst string, opts Options) error {
	if err := s.fs.MkdirAll(dst, 0o755); err != nil {
		return errors.NewFileProcessingError("copy", dst, "could not create destination directory", err)
	}

	entries, err := s.fs.ReadDir(src)
	if err != nil {
		return errors.NewFileProcessingError("copy", src, "could not list source directory", err)
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return wrapContextErr("copy", src, ctx.Err(), s.opTimeout(opts.Timeout))
		}

		childSrc := filepath.Join(src, entry.Name())
		childDst := filepath.Join(dst, entry.Name())

		info, statErr := s.fs.Stat(childSrc)
		if statErr != nil {
			s.logger.Warn("skipping unreadable entry during copy", "path", childSrc, "error", statErr)
			continue
		}

		if info.IsDir() {
			if err := s.copyDir(ctx, childSrc, childDst, opts); err != nil {
				return err
			}
			continue
		}
		if err := s.copyFile(ctx, childSrc, childDst, info, opts); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) copyFile(ctx context.Context, src, dst string, srcInfo os.FileInfo, opts Options) error {
	if err := s.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.NewFileProcessingError("copy", dst, "could not create destination directory", err)
	}

	if opts.ForceStream || srcInfo.Size() > s.limits.MaxInMemorySize {
		if err := s.streamCopy(ctx, src, dst, srcInfo.Size(), opts); err != nil {
			return err
		}
	} else {
		data, readErr := runIO(ctx, func() ([]byte, error) {
			return s.fs.ReadFile(src)
		})
		if readErr != nil {
			if ctx.Err() != nil {
				return wrapContextErr("copy", src, ctx.Err(), s.opTimeout(opts.Timeout))
			}
			return errors.NewFileProcessingError("copy", src, "could not read source file", readErr)
		}
		if err := s.fs.WriteFile(dst, data, srcInfo.Mode().Perm()); err != nil {
			return errors.NewFileProcessingError("copy", dst, "could not write destination file", err)
		}
	}

	if opts.PreserveTimestamps {
		atime, _ := statTimes(srcInfo)
		if err := s.fs.Chtimes(dst, atime, srcInfo.ModTime()); err != nil {
			return errors.NewFileProcessingError("copy", dst, "could not preserve timestamps", err)
		}
	}
	return nil
}

// streamCopy moves content in chunks with progress, observing cancellation
// at every chunk boundary.
func (s *Service) streamCopy(ctx context.Context, src, dst string, total int64, opts Options) error {
	reader, err := s.fs.Open(src)
	if err != nil {
		return errors.NewFileProcessingError("copy", src, "could not open source file", err)
	}
	defer reader.Close()

	writer, err := s.fs.Create(dst, 0o644)
	if err != nil {
		return errors.NewFileProcessingError("copy", dst, "could not create destination file", err)
	}

	opts.emit(progressEvent("copy", src, 0, total))

	buf := make([]byte, s.limits.ChunkSize)
	var processed, lastEmitted int64
	for {
		if ctx.Err() != nil {
			_ = writer.Close()
			return wrapContextErr("copy", src, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		if err := s.waitThrottle(ctx, len(buf)); err != nil {
			_ = writer.Close()
			return wrapContextErr("copy", src, err, s.opTimeout(opts.Timeout))
		}

		n, readErr := reader.Read(buf)
		if n > 0 {
			if _, writeErr := writer.Write(buf[:n]); writeErr != nil {
				_ = writer.Close()
				return errors.NewFileProcessingError("copy", dst, "could not write destination file", writeErr)
			}
			processed += int64(n)
			if processed-lastEmitted >= s.limits.ProgressIntervalBytes {
				opts.emit(progressEvent("copy", src, processed, total))
				lastEmitted = processed
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = writer.Close()
			return errors.NewFileProcessingError("copy", src, "could not read source file", readErr)
		}
	}

	if err := writer.Close(); err != nil {
		return errors.NewFileProcessingError("copy", dst, "could not finalize destination file", err)
	}

	opts.emit(progressEvent("copy", src, processed, processed))
	return nil
}
