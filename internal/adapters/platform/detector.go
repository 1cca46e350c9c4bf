// Package platform identifies the host distribution from os-release.
package platform

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PlatformDetector = (*Detector)(nil)

// DefaultPaths are the os-release locations in lookup order.
var DefaultPaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// Detector implements ports.PlatformDetector.
type Detector struct {
	paths []string
}

// NewDetector creates a Detector reading the given os-release files in order.
// With no paths it reads DefaultPaths.
func NewDetector(paths ...string) *Detector {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	return &Detector{paths: paths}
}

// Detect reads the first os-release file that exists.
// When none exists the platform is unknown and no error is returned.
func (d *Detector) Detect() (domain.Platform, error) {
	for _, path := range d.paths {
		f, err := os.Open(path) //nolint:gosec // Path is a fixed system location
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return domain.Platform{}, zerr.With(zerr.Wrap(err, domain.ErrPlatformDetect.Error()), "path", path)
		}

		p, err := parse(f)
		_ = f.Close()
		if err != nil {
			return domain.Platform{}, zerr.With(zerr.Wrap(err, domain.ErrPlatformDetect.Error()), "path", path)
		}
		return p, nil
	}

	return domain.Platform{}, nil
}

// parse extracts ID and VERSION_ID from os-release content.
// See os-release(5): KEY=value lines, values optionally quoted.
func parse(f *os.File) (domain.Platform, error) {
	var p domain.Platform

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch key {
		case "ID":
			p.ID = strings.ToLower(unquote(value))
		case "VERSION_ID":
			p.VersionID = unquote(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return domain.Platform{}, err
	}
	return p, nil
}

func unquote(value string) string {
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		if value[0] == '"' {
			if s, err := strconv.Unquote(value); err == nil {
				return s
			}
		}
		return value[1 : len(value)-1]
	}
	return value
}
