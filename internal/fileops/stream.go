package fileops

import (
	"bytes"
	"context"
	"io"

	"themesmith/internal/errors"
)

// streamRead reads the file in chunks, accumulating the content and emitting
// progress at 0%, at least once per configured byte interval, and at 100%.
// Cancellation is observed at every chunk boundary.
func (s *Service) streamRead(ctx context.Context, path string, total int64, opts Options) ([]byte, error) {
	reader, err := s.fs.Open(path)
	if err != nil {
		return nil, errors.NewFileProcessingError("read", path, "could not open file", err)
	}
	defer reader.Close()

	opts.emit(progressEvent("read", path, 0, total))

	var out bytes.Buffer
	if total > 0 {
		out.Grow(int(total))
	}

	buf := make([]byte, s.limits.ChunkSize)
	var processed, lastEmitted int64
	for {
		if ctx.Err() != nil {
			return nil, wrapContextErr("read", path, ctx.Err(), s.opTimeout(opts.Timeout))
		}
		if err := s.waitThrottle(ctx, len(buf)); err != nil {
			return nil, wrapContextErr("read", path, err, s.opTimeout(opts.Timeout))
		}

		n, readErr := reader.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
			processed += int64(n)
			if processed-lastEmitted >= s.limits.ProgressIntervalBytes {
				opts.emit(progressEvent("read", path, processed, total))
				lastEmitted = processed
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, errors.NewFileProcessingError("read", path, "could not read file content", readErr)
		}
	}

	opts.emit(progressEvent("read", path, processed, processed))
	return out.Bytes(), nil
}

// streamWrite slices data into fixed-size chunks written sequentially, each
// awaited before the next. No pipelining keeps memory use and backpressure
// simple.
func (s *Service) streamWrite(ctx context.Context, path string, data []byte, opts Options) error {
	writer, err := s.fs.Create(path, 0o644)
	if err != nil {
		return errors.NewFileProcessingError("write", path, "could not create file", err)
	}

	total := int64(len(data))
	opts.emit(progressEvent("write", path, 0, total))

	var processed, lastEmitted int64
	chunk := s.limits.ChunkSize
	for offset := int64(0); offset < total; offset += chunk {
		if ctx.Err() != nil {
			_ = writer.Close()
			return wrapContextErr("write", path, ctx.Err(), s.opTimeout(opts.Timeout))
		}

		end := offset + chunk
		if end > total {
			end = total
		}
		if err := s.waitThrottle(ctx, int(end-offset)); err != nil {
			_ = writer.Close()
			return wrapContextErr("write", path, err, s.opTimeout(opts.Timeout))
		}

		if _, err := writer.Write(data[offset:end]); err != nil {
			_ = writer.Close()
			return errors.NewFileProcessingError("write", path, "could not write file content", err)
		}
		processed = end
		if processed-lastEmitted >= s.limits.ProgressIntervalBytes && processed < total {
			opts.emit(progressEvent("write", path, processed, total))
			lastEmitted = processed
		}
	}

	if err := writer.Close(); err != nil {
		return errors.NewFileProcessingError("write", path, "could not finalize file", err)
	}

	opts.emit(progressEvent("write", path, total, total))
	return nil
}

// waitThrottle blocks until the byte-rate limiter admits n bytes; a nil
// limiter admits everything.
func (s *Service) waitThrottle(ctx context.Context, n int) error {
	if s.throttle == nil {
		return nil
	}
	return s.throttle.WaitN(ctx, n)
}
