package domain

import "time"

// EntryInfo describes one cache entry on disk.
type EntryInfo struct {
	Fingerprint Fingerprint
	Path        string
	Complete    bool
	ModTime     time.Time

	// Published reports whether the published link points at this entry.
	Published bool

	// Checksum is the content checksum of the entry, filled only on request.
	Checksum string
}

// SyncResult reports what a sync did.
type SyncResult struct {
	Fingerprint Fingerprint
	EntryPath   string
	LinkPath    string

	// Installed is true when the installer ran; false when a complete entry was reused.
	Installed bool
}

// Status compares the published link against the current inputs.
type Status struct {
	Fingerprint   Fingerprint
	ToolVersion   string
	Platform      Platform
	ExpectedEntry string
	LinkPath      string

	// PublishedTarget is where the link points, or empty when it does not exist.
	PublishedTarget string

	// Complete reports whether the expected entry carries its completion marker.
	Complete bool

	// UpToDate is true when the link resolves to the complete expected entry.
	UpToDate bool

	// Checksum is the content checksum of the expected entry, filled only on request.
	Checksum string
}
