package security

import (
	"log/slog"
	"sync"
	"time"

	"themesmith/internal/config"
	"themesmith/internal/domain"
)

// ResourceLimiter enforces fixed-window operation quotas. Counters are zeroed
// by a background ticker every reset interval; bursts straddling a window
// boundary are accepted, which is intended (fixed window, not sliding).
type ResourceLimiter struct {
	mu     sync.Mutex
	counts map[domain.OperationKind]int
	limits map[domain.OperationKind]int

	resetInterval time.Duration
	ticker        *time.Ticker
	done          chan struct{}
	stopOnce      sync.Once
	logger        *slog.Logger
}

// NewResourceLimiter creates a limiter with the configured per-kind limit
// table and starts its reset timer.
func NewResourceLimiter(limits config.Limits, logger *slog.Logger) *ResourceLimiter {
	l := &ResourceLimiter{
		counts: make(map[domain.OperationKind]int),
		limits: map[domain.OperationKind]int{
			domain.KindFileReads:     limits.FileReadLimit,
			domain.KindFileWrites:    limits.FileWriteLimit,
			domain.KindConcurrentOps: limits.ConcurrentOpsLimit,
		},
		resetInterval: limits.ResetInterval,
		done:          make(chan struct{}),
		logger:        logger,
	}

	l.ticker = time.NewTicker(l.resetInterval)
	go l.resetLoop()

	return l
}

func (l *ResourceLimiter) resetLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.Reset()
		case <-l.done:
			return
		}
	}
}

// CanPerform reports whether another operation of the given kind fits in the
// current window. Unknown kinds are permitted.
func (l *ResourceLimiter) CanPerform(kind domain.OperationKind) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limit, known := l.limits[kind]
	if !known {
		return true
	}
	return l.counts[kind] < limit
}

// Track increments the counter for the given kind unconditionally. Callers
// must check CanPerform first.
func (l *ResourceLimiter) Track(kind domain.OperationKind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[kind]++
}

// Release decrements the counter for the given kind, used for concurrency
// slots that free up when an operation finishes.
func (l *ResourceLimiter) Release(kind domain.OperationKind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[kind] > 0 {
		l.counts[kind]--
	}
}

// Limit returns the configured limit for the given kind, or 0 if unknown.
func (l *ResourceLimiter) Limit(kind domain.OperationKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limits[kind]
}

// Reset zeroes all counters, starting a fresh window.
func (l *ResourceLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for kind := range l.counts {
		delete(l.counts, kind)
	}
	if l.logger != nil {
		l.logger.Debug("resource counters reset", "interval", l.resetInterval)
	}
}

// Stats returns a copy of the current counters and limits.
func (l *ResourceLimiter) Stats() domain.SecurityStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := domain.SecurityStats{
		Counts: make(map[domain.OperationKind]int, len(l.counts)),
		Limits: make(map[domain.OperationKind]int, len(l.limits)),
	}
	for k, v := range l.counts {
		stats.Counts[k] = v
	}
	for k, v := range l.limits {
		stats.Limits[k] = v
	}
	return stats
}

// Cleanup stops the reset timer and clears state. Idempotent.
func (l *ResourceLimiter) Cleanup() {
	l.stopOnce.Do(func() {
		l.ticker.Stop()
		close(l.done)
	})
	l.Reset()
}
