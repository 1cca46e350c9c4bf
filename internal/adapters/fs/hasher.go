package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeHasher = (*Hasher)(nil)

// entryIgnores are bookkeeping files that are not part of an entry's content.
var entryIgnores = []string{domain.MarkerName, "*.tmp"}

// Hasher computes content checksums of cache entries.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeTreeHash hashes the relative path, type, permission bits and content of every
// file under root. Symlinks contribute their target instead of content.
// The completion marker is excluded, so a finished entry hashes like its unfinished self.
func (h *Hasher) ComputeTreeHash(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrChecksumFailed.Error()), "path", root)
	}
	if !info.IsDir() {
		return "", zerr.With(zerr.With(domain.ErrChecksumFailed, "reason", "not a directory"), "path", root)
	}

	hasher := xxhash.New()
	for path, walkErr := range h.walker.WalkFiles(root, entryIgnores) {
		if walkErr != nil {
			return "", zerr.With(zerr.Wrap(walkErr, domain.ErrChecksumFailed.Error()), "path", path)
		}
		if err := h.hashEntry(root, path, hasher); err != nil {
			return "", zerr.Wrap(err, domain.ErrChecksumFailed.Error())
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashEntry(root, path string, mainHasher io.Writer) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	_, _ = mainHasher.Write([]byte(filepath.ToSlash(rel)))
	_, _ = mainHasher.Write([]byte{0}) // Separator

	mode := info.Mode()
	if err := binary.Write(mainHasher, binary.LittleEndian, uint32(mode.Type()|mode.Perm())); err != nil {
		return zerr.Wrap(err, "failed to write mode to digest")
	}

	if mode&os.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read symlink"), "path", path)
		}
		_, _ = mainHasher.Write([]byte(target))
		_, _ = mainHasher.Write([]byte{0})
		return nil
	}

	if !mode.IsRegular() {
		// Sockets, pipes and devices have no content to hash.
		return nil
	}

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
