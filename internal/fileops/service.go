// Package fileops implements the file service: every filesystem operation of
// the tool, each routed through the security gateway, wrapped with a timeout,
// registered for cancellation, and streamed in chunks when the payload
// exceeds the in-memory threshold.
package fileops

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"themesmith/internal/config"
	"themesmith/internal/domain"
	"themesmith/internal/errors"
	"themesmith/internal/theme"
)

// Service performs all filesystem operations for the tool.
type Service struct {
	fs       domain.FileSystemAdapter
	security domain.SecurityGateway
	parser   *theme.Parser
	limits   config.Limits
	logger   *slog.Logger
	active   *registry
	throttle *rate.Limiter // nil when throttling is disabled
}

// NewService creates a file service. The caller owns the instance and its
// security gateway; nothing here is a package-level singleton.
func NewService(
	fs domain.FileSystemAdapter,
	gateway domain.SecurityGateway,
	limits config.Limits,
	logger *slog.Logger,
) *Service {
	var throttle *rate.Limiter
	if limits.ThrottleBytesPerSec > 0 {
		burst := limits.ThrottleBytesPerSec
		if limits.ChunkSize > burst {
			burst = limits.ChunkSize
		}
		throttle = rate.NewLimiter(rate.Limit(limits.ThrottleBytesPerSec), int(burst))
	}

	return &Service{
		fs:       fs,
		security: gateway,
		parser:   theme.NewParser(),
		limits:   limits,
		logger:   logger,
		active:   newRegistry(),
		throttle: throttle,
	}
}

// ActiveOperations returns the number of registered in-flight operations.
func (s *Service) ActiveOperations() int {
	return s.active.count()
}

// Cancel aborts the operation with the given id, if it is still registered.
func (s *Service) Cancel(id string) bool {
	return s.active.cancel(id)
}

// CancelAll aborts every registered operation and returns how many were cancelled.
func (s *Service) CancelAll() int {
	return s.active.cancelAll()
}

// begin starts an operation's lifecycle: a concurrency slot is acquired, an
// id is minted, and a cancellation handle is registered. The returned finish
// function releases everything and must run on every exit path.
func (s *Service) begin(parent context.Context, timeout time.Duration) (context.Context, string, func(), error) {
	if err := s.security.AcquireOperationSlot(); err != nil {
		return nil, "", nil, err
	}

	if timeout <= 0 {
		timeout = s.limits.DefaultTimeout
	}

	id := uuid.NewString()
	ctx, cancel := context.WithTimeout(parent, timeout)
	s.active.add(id, cancel)

	var once sync.Once
	finish := func() {
		once.Do(func() {
			cancel()
			s.active.remove(id)
			s.security.ReleaseOperationSlot()
		})
	}
	return ctx, id, finish, nil
}

// opTimeout resolves the effective timeout for error reporting.
func (s *Service) opTimeout(requested time.Duration) time.Duration {
	if requested > 0 {
		return requested
	}
	return s.limits.DefaultTimeout
}

// wrapContextErr converts a context failure into the typed taxonomy, stating
// the configured timeout duration when the deadline won the race.
func wrapContextErr(op, path string, err error, timeout time.Duration) error {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewTimeoutError(op, path, timeout)
	case stderrors.Is(err, context.Canceled):
		return errors.NewCancelledError(op, path)
	default:
		return errors.NewFileProcessingError(op, path, "operation aborted", err)
	}
}

// runIO races a blocking filesystem call against the operation's context.
// Whichever settles first wins; when the context wins, the call keeps running
// on its goroutine and releases its own resources when it returns.
func runIO[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	ch := make(chan outcome, 1)
	go func() {
		v, err := fn()
		ch <- outcome{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case out := <-ch:
		return out.value, out.err
	}
}

// registry tracks cancellation handles for in-flight operations. Register on
// start, deregister exactly once on end, whatever the exit path.
type registry struct {
	mu  sync.Mutex
	ops map[string]context.CancelFunc
}

func newRegistry() *registry {
	return &registry{ops: make(map[string]context.CancelFunc)}
}

func (r *registry) add(id string, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[id] = cancel
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ops, id)
}

func (r *registry) cancel(id string) bool {
	r.mu.Lock()
	cancel, ok := r.ops[id]
	delete(r.ops, id)
	r.mu.Unlock()

	if ok {
		cancel()
	}
	return ok
}

func (r *registry) cancelAll() int {
	r.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(r.ops))
	for id, cancel := range r.ops {
		cancels = append(cancels, cancel)
		delete(r.ops, id)
	}
	r.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	return len(cancels)
}

func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops)
}
