package ports

import "go.trai.ch/modcache/internal/core/domain"

// EntryStore defines the fingerprint-keyed cache of installed module trees.
//
// The store performs no locking of its own. There is intentionally no deletion API.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type EntryStore interface {
	// EntryPath returns the directory of the entry for fp under root.
	EntryPath(root string, fp domain.Fingerprint) string

	// LockPath returns the lock file guarding installs of fp under root.
	LockPath(root string, fp domain.Fingerprint) string

	// IsComplete reports whether the entry carries its completion marker.
	// A missing entry is incomplete, not an error.
	IsComplete(entryPath string) bool

	// Prepare creates the entry directory if it does not exist.
	Prepare(entryPath string) error

	// MarkComplete writes the completion marker. It must be the last write of an install.
	MarkComplete(entryPath string) error

	// Entries lists the entries under root, sorted by fingerprint.
	Entries(root string) ([]domain.EntryInfo, error)
}
