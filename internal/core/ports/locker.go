package ports

import "context"

// Locker provides cross-process advisory locks.
//
//go:generate go run go.uber.org/mock/mockgen -source=locker.go -destination=mocks/mock_locker.go -package=mocks
type Locker interface {
	// Lock blocks until the exclusive lock on path is held or ctx ends.
	// The returned function releases the lock.
	Lock(ctx context.Context, path string) (unlock func() error, err error)
}
