package fileops

import (
	"context"
	"path/filepath"
	"strings"

	"themesmith/internal/domain"
	"themesmith/internal/errors"
)

// ListDirectory lists entries with per-entry metadata. Dot-entries are
// skipped unless IncludeHidden is set, an optional filter narrows the
// results, and Recursive descends depth-first. Entries whose metadata cannot
// be loaded (permissions, broken symlink) are skipped with a warning:
// partial results beat total failure for a read-only operation.
func (s *Service) ListDirectory(ctx context.Context, path string, opts Options) ([]domain.DirectoryEntry, error) {
	vetted, err := s.security.ValidateDirPath(path, opts.BaseDir)
	if err != nil {
		return nil, err
	}

	ctx, _, finish, err := s.begin(ctx, opts.Timeout)
	if err != nil {
		return nil, err
	}
	defer finish()

	var out []domain.DirectoryEntry
	if err := s.listDir(ctx, vetted, opts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) listDir(ctx context.Context, dir string, opts Options, out *[]domain.DirectoryEntry) error {
	if ctx.Err() != nil {
		return wrapContextErr("list", dir, ctx.Err(), s.opTimeout(opts.Timeout))
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return errors.NewFileProcessingError("list", dir, "could not list directory", err)
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return wrapContextErr("list", dir, ctx.Err(), s.opTimeout(opts.Timeout))
		}

		name := entry.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		full := filepath.Join(dir, name)
		info, statErr := s.fs.Stat(full)
		if statErr != nil {
			s.logger.Warn("skipping unreadable entry", "path", full, "error", statErr)
			continue
		}

		item := domain.DirectoryEntry{
			Name: name,
			Path: full,
			Metadata: domain.FileMetadata{
				Path:        full,
				Size:        info.Size(),
				ModTime:     info.ModTime(),
				IsDirectory: info.IsDir(),
				IsFile:      info.Mode().IsRegular(),
				Mode:        info.Mode().Perm(),
			},
		}
		item.Metadata.AccessTime, item.Metadata.ChangeTime = statTimes(info)

		if opts.Filter == nil || opts.Filter(item) {
			*out = append(*out, item)
		}

		if opts.Recursive && info.IsDir() {
			if err := s.listDir(ctx, full, opts, out); err != nil {
				return err
			}
		}
	}
	return nil
}
