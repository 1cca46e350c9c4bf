package domain

import "go.trai.ch/zerr"

var (
	// ErrDependencyFileRead is returned when the dependency file cannot be read.
	ErrDependencyFileRead = zerr.New("failed to read dependency file")

	// ErrDependencyFileParse is returned when the dependency file is not a mapping of module to version.
	ErrDependencyFileParse = zerr.New("failed to parse dependency file")

	// ErrDuplicateModule is returned when a module is declared twice in the dependency file.
	ErrDuplicateModule = zerr.New("duplicate module in dependency file")

	// ErrToolVersionFailed is returned when the installer toolchain cannot report its version.
	ErrToolVersionFailed = zerr.New("failed to query installer tool version")

	// ErrInvalidFingerprint is returned when a string is not a well-formed fingerprint.
	ErrInvalidFingerprint = zerr.New("invalid fingerprint")

	// ErrSettingsRead is returned when the settings file cannot be read.
	ErrSettingsRead = zerr.New("failed to read settings file")

	// ErrSettingsParse is returned when the settings file cannot be parsed.
	ErrSettingsParse = zerr.New("failed to parse settings file")

	// ErrInvalidLockTimeout is returned when the configured lock timeout is not a positive duration.
	ErrInvalidLockTimeout = zerr.New("invalid lock timeout")

	// ErrPlatformDetect is returned when the host os-release file exists but cannot be read.
	ErrPlatformDetect = zerr.New("failed to detect host platform")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrModuleInstallFailed is returned when the installer fails for a single module.
	ErrModuleInstallFailed = zerr.New("module install failed")

	// ErrEntryPrepareFailed is returned when a cache entry directory cannot be created.
	ErrEntryPrepareFailed = zerr.New("failed to prepare cache entry")

	// ErrMarkerWriteFailed is returned when the completion marker cannot be written.
	ErrMarkerWriteFailed = zerr.New("failed to write completion marker")

	// ErrEntryListFailed is returned when the cache root cannot be listed.
	ErrEntryListFailed = zerr.New("failed to list cache entries")

	// ErrLockFailed is returned when the per-fingerprint install lock cannot be acquired.
	ErrLockFailed = zerr.New("failed to acquire install lock")

	// ErrPublishFailed is returned when the published link cannot be swapped.
	ErrPublishFailed = zerr.New("failed to publish cache entry")

	// ErrResolveLinkFailed is returned when the published link cannot be read.
	ErrResolveLinkFailed = zerr.New("failed to resolve published link")

	// ErrChecksumFailed is returned when an entry's content checksum cannot be computed.
	ErrChecksumFailed = zerr.New("failed to checksum cache entry")

	// ErrSyncFailed is joined onto any error that aborts a sync.
	ErrSyncFailed = zerr.New("sync failed")

	// ErrNotUpToDate is returned by status checks when the published link is stale.
	ErrNotUpToDate = zerr.New("published link is not up to date")
)
