package lock

import "time"

// NewLockerWithRetry creates a Locker polling at the given interval.
func NewLockerWithRetry(retry time.Duration) *Locker {
	return &Locker{retryDelay: retry}
}
