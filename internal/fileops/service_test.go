package fileops

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themesmith/internal/adapters/filesystem"
	"themesmith/internal/config"
	"themesmith/internal/domain"
	"themesmith/internal/errors"
	"themesmith/internal/logging"
	"themesmith/internal/security"
	"themesmith/internal/testutil"
)

// newTestService builds a service on the real filesystem with optionally
// tweaked limits, anchored at a temporary base directory.
func newTestService(t *testing.T, mutate func(*config.Limits)) (*Service, string) {
	t.Helper()
	return newTestServiceFS(t, filesystem.New(), mutate)
}

func newTestServiceFS(t *testing.T, fs domain.FileSystemAdapter, mutate func(*config.Limits)) (*Service, string) {
	t.Helper()

	limits := config.DefaultLimits()
	if mutate != nil {
		mutate(&limits)
	}

	gateway := security.NewService(fs, limits, logging.NewTestLogger())
	t.Cleanup(gateway.Cleanup)

	return NewService(fs, gateway, limits, logging.NewTestLogger()), t.TempDir()
}

// smallStreamLimits drops the streaming thresholds so tests exercise the
// chunked paths without large fixtures.
func smallStreamLimits(l *config.Limits) {
	l.MaxInMemorySize = 1024
	l.ChunkSize = 256
	l.ProgressIntervalBytes = 512
}

func TestRejectedPathNeverStartsAnOperation(t *testing.T) {
	svc, base := newTestService(t, nil)

	_, err := svc.ReadFile(context.Background(), "../../etc/passwd", Options{BaseDir: base})
	require.Error(t, err)
	assert.True(t, errors.IsSecurity(err))
	assert.Equal(t, 0, svc.ActiveOperations())
}

func TestReadFileRejectsDisallowedExtension(t *testing.T) {
	svc, base := newTestService(t, nil)

	_, err := svc.ReadFile(context.Background(), "payload.exe", Options{BaseDir: base})
	require.Error(t, err)
	assert.True(t, errors.IsSecurity(err))
}

func TestOperationTimesOutAndDeregisters(t *testing.T) {
	slow := &testutil.SlowFS{FileSystemAdapter: filesystem.New(), Delay: 500 * time.Millisecond}
	svc, base := newTestServiceFS(t, slow, nil)

	_, err := svc.ReadFile(context.Background(), "theme.conf", Options{
		BaseDir: base,
		Timeout: 20 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err))
	assert.Equal(t, 0, svc.ActiveOperations())
}

func TestCancelAllAbortsInFlightOperations(t *testing.T) {
	slow := &testutil.SlowFS{FileSystemAdapter: filesystem.New(), Delay: 5 * time.Second}
	svc, base := newTestServiceFS(t, slow, nil)

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.ReadFile(context.Background(), "theme.conf", Options{BaseDir: base})
		errCh <- err
	}()

	require.Eventually(t, func() bool {
		return svc.ActiveOperations() == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, svc.CancelAll())

	err := <-errCh
	require.Error(t, err)
	assert.True(t, errors.IsCancelled(err))
	assert.Equal(t, 0, svc.ActiveOperations())
}

func TestConcurrencySlotIsReleasedBetweenOperations(t *testing.T) {
	svc, base := newTestService(t, func(l *config.Limits) {
		l.ConcurrentOpsLimit = 1
	})

	for i := 0; i < 3; i++ {
		_, err := svc.Exists(context.Background(), "missing.conf", Options{BaseDir: base})
		require.NoError(t, err, "iteration %d must get a fresh slot", i)
	}
}

func TestConcurrencySlotExhaustion(t *testing.T) {
	slow := &testutil.SlowFS{FileSystemAdapter: filesystem.New(), Delay: 5 * time.Second}
	svc, base := newTestServiceFS(t, slow, func(l *config.Limits) {
		l.ConcurrentOpsLimit = 1
	})

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.ReadFile(context.Background(), "theme.conf", Options{BaseDir: base})
		errCh <- err
	}()

	require.Eventually(t, func() bool {
		return svc.ActiveOperations() == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err := svc.Exists(context.Background(), "other.conf", Options{BaseDir: base})
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))

	svc.CancelAll()
	<-errCh
}
