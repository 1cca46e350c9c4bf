package lock_test

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modcache/internal/adapters/lock"
	"go.trai.ch/modcache/internal/core/domain"
)

func TestLocker_LockUnlock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "fp.lock")
	locker := lock.NewLocker()

	unlock, err := locker.Lock(context.Background(), path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	require.NoError(t, unlock())

	// The lock can be taken again once released.
	unlock, err = locker.Lock(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, unlock())
}

func TestLocker_Exclusive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fp.lock")
	locker := lock.NewLockerWithRetry(5 * time.Millisecond)

	var (
		holders    atomic.Int32
		maxHolders atomic.Int32
		wg         sync.WaitGroup
	)

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock, err := locker.Lock(context.Background(), path)
			if !assert.NoError(t, err) {
				return
			}

			n := holders.Add(1)
			for {
				m := maxHolders.Load()
				if n <= m || maxHolders.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			holders.Add(-1)

			assert.NoError(t, unlock())
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(1), maxHolders.Load())
}

func TestLocker_ContextCanceled(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fp.lock")
	locker := lock.NewLockerWithRetry(5 * time.Millisecond)

	unlock, err := locker.Lock(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = unlock() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrLockFailed.Error())
}
