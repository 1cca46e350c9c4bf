// Package cas implements the fingerprint-addressed store of installed module trees.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EntryStore = (*Store)(nil)

// markerTempPattern names the scratch file the marker is staged in before the rename.
const markerTempPattern = domain.MarkerName + ".*.tmp"

// Store implements ports.EntryStore using one directory per fingerprint.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// EntryPath returns the directory of the entry for fp under root.
func (s *Store) EntryPath(root string, fp domain.Fingerprint) string {
	return filepath.Join(root, fp.String())
}

// LockPath returns the lock file guarding installs of fp under root.
// It lives beside the entry so that it survives a reset of the entry directory.
func (s *Store) LockPath(root string, fp domain.Fingerprint) string {
	return filepath.Join(root, fp.String()+domain.LockSuffix)
}

// IsComplete reports whether the entry carries its completion marker.
func (s *Store) IsComplete(entryPath string) bool {
	info, err := os.Stat(filepath.Join(entryPath, domain.MarkerName))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Prepare creates the entry directory and its parents.
// Files left behind by an interrupted install are kept; the installer overwrites them.
func (s *Store) Prepare(entryPath string) error {
	if err := os.MkdirAll(entryPath, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrEntryPrepareFailed.Error()), "path", entryPath)
	}
	return nil
}

// MarkComplete writes the completion marker.
//
// The marker is staged in a temporary file and renamed into place, so a crash leaves
// either no marker or a whole one.
func (s *Store) MarkComplete(entryPath string) error {
	tmp, err := os.CreateTemp(entryPath, markerTempPattern)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMarkerWriteFailed.Error()), "path", entryPath)
	}
	tmpName := tmp.Name()

	if err := s.finishMarker(tmp); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrMarkerWriteFailed.Error()), "path", entryPath)
	}

	if err := os.Rename(tmpName, filepath.Join(entryPath, domain.MarkerName)); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrMarkerWriteFailed.Error()), "path", entryPath)
	}

	return nil
}

func (s *Store) finishMarker(f *os.File) error {
	if err := f.Chmod(domain.FilePerm); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Entries lists the fingerprint directories under root, sorted by fingerprint.
// A missing root holds no entries. Lock files and foreign names are skipped.
func (s *Store) Entries(root string) ([]domain.EntryInfo, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEntryListFailed.Error()), "path", root)
	}

	var entries []domain.EntryInfo
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}

		fp, err := domain.ParseFingerprint(de.Name())
		if err != nil {
			continue
		}

		info, err := de.Info()
		if err != nil {
			// Removed while listing.
			continue
		}

		path := filepath.Join(root, de.Name())
		entries = append(entries, domain.EntryInfo{
			Fingerprint: fp,
			Path:        path,
			Complete:    s.IsComplete(path),
			ModTime:     info.ModTime(),
		})
	}

	slices.SortFunc(entries, func(a, b domain.EntryInfo) int {
		return strings.Compare(a.Fingerprint.String(), b.Fingerprint.String())
	})

	return entries, nil
}
