package domain

import (
	"path/filepath"
	"time"
)

const (
	// MarkerName is the name of the completion marker inside a cache entry.
	MarkerName = ".success-stamp"

	// LockSuffix is appended to a fingerprint to name its install lock file.
	LockSuffix = ".lock"

	// CurrentLinkName is the default name of the published link inside the cache root.
	CurrentLinkName = "current"

	// SettingsFileName is the name of the optional settings file.
	SettingsFileName = "modcache.yaml"

	// DefaultDepsFile is the default location of the dependency file.
	DefaultDepsFile = "puppet/deps.yaml"

	// DefaultCacheRoot is the default root directory of the cache.
	DefaultCacheRoot = "/srv/modcache"

	// DefaultLockTimeout bounds how long an install waits for another process holding the same fingerprint.
	DefaultLockTimeout = 30 * time.Minute

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Settings holds the paths and knobs of one cache operation.
// Nothing in the core reads a global path; everything flows through Settings.
type Settings struct {
	// CacheRoot holds one subdirectory per fingerprint.
	CacheRoot string

	// DepsFile is the declarative module -> version file.
	DepsFile string

	// LinkPath is the published symlink. Empty means <CacheRoot>/current.
	LinkPath string

	// LockTimeout bounds the wait for another installer holding the same fingerprint.
	LockTimeout time.Duration

	// EnvOverrides are appended to DefaultEnvOverrides when matching the host platform.
	EnvOverrides []EnvOverride
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		CacheRoot:   DefaultCacheRoot,
		DepsFile:    DefaultDepsFile,
		LockTimeout: DefaultLockTimeout,
	}
}

// ResolvedLinkPath returns LinkPath, falling back to <CacheRoot>/current.
func (s Settings) ResolvedLinkPath() string {
	if s.LinkPath != "" {
		return s.LinkPath
	}
	return filepath.Join(s.CacheRoot, CurrentLinkName)
}

// OverrideTable returns the built-in override rows followed by the configured ones.
func (s Settings) OverrideTable() []EnvOverride {
	table := make([]EnvOverride, 0, len(DefaultEnvOverrides)+len(s.EnvOverrides))
	table = append(table, DefaultEnvOverrides...)
	return append(table, s.EnvOverrides...)
}
