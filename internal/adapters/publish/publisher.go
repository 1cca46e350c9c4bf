// Package publish exposes cache entries through an atomically swapped symbolic link.
package publish

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Publisher = (*Publisher)(nil)

// Publisher implements ports.Publisher.
//
// The new link is created under a unique temporary name next to the published link and
// renamed over it. rename(2) replaces a symlink atomically, so readers see either the
// old target or the new one.
type Publisher struct{}

// NewPublisher creates a new Publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish points linkPath at entryPath.
func (p *Publisher) Publish(entryPath, linkPath string) error {
	target, err := filepath.Abs(entryPath)
	if err != nil {
		return p.fail(err, entryPath, linkPath)
	}

	dir := filepath.Dir(linkPath)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return p.fail(err, entryPath, linkPath)
	}

	// A real directory cannot be replaced by rename(2). It is a leftover from before the
	// link was introduced and is removed first.
	if info, err := os.Lstat(linkPath); err == nil && info.IsDir() {
		if err := os.RemoveAll(linkPath); err != nil {
			return p.fail(err, entryPath, linkPath)
		}
	}

	tmp := filepath.Join(dir, "."+filepath.Base(linkPath)+"."+uuid.NewString()+".tmp")
	if err := os.Symlink(target, tmp); err != nil {
		return p.fail(err, entryPath, linkPath)
	}

	if err := os.Rename(tmp, linkPath); err != nil {
		_ = os.Remove(tmp)
		return p.fail(err, entryPath, linkPath)
	}

	return nil
}

// Resolve returns the target of linkPath, or an empty string when nothing is published
// there. A real directory or file at linkPath publishes nothing; Publish replaces it.
func (p *Publisher) Resolve(linkPath string) (string, error) {
	info, err := os.Lstat(linkPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", p.resolveFailed(err, linkPath)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return "", nil
	}

	target, err := os.Readlink(linkPath)
	if err != nil {
		return "", p.resolveFailed(err, linkPath)
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(linkPath), target)
	}
	return filepath.Clean(target), nil
}

func (p *Publisher) fail(err error, entryPath, linkPath string) error {
	err = zerr.Wrap(err, domain.ErrPublishFailed.Error())
	err = zerr.With(err, "entry", entryPath)
	return zerr.With(err, "link", linkPath)
}

func (p *Publisher) resolveFailed(err error, linkPath string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrResolveLinkFailed.Error()), "link", linkPath)
}
