// Package lock implements cross-process advisory locks on lock files.
package lock

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Locker = (*Locker)(nil)

// DefaultRetryDelay is how often a blocked Lock polls the lock file.
const DefaultRetryDelay = 100 * time.Millisecond

// Locker implements ports.Locker with flock(2) on a dedicated lock file.
//
// The kernel drops the lock when the holding process dies, so a crashed installer
// never leaves a stale lock behind.
type Locker struct {
	retryDelay time.Duration
}

// NewLocker creates a new Locker polling at DefaultRetryDelay.
func NewLocker() *Locker {
	return &Locker{retryDelay: DefaultRetryDelay}
}

// Lock blocks until the exclusive lock on path is held or ctx ends.
// The parent directory of path is created when missing.
func (l *Locker) Lock(ctx context.Context, path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", path)
	}

	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, l.retryDelay)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", path)
	}
	if !locked {
		return nil, zerr.With(domain.ErrLockFailed, "path", path)
	}

	return fl.Unlock, nil
}
