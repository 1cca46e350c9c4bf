package domain

import (
	"slices"
)

// Platform identifies the host distribution as reported by os-release.
// The zero value means the platform is unknown.
type Platform struct {
	// ID is the lower-case distribution identifier (e.g., "ubuntu").
	ID string

	// VersionID is the distribution version (e.g., "20.04").
	VersionID string
}

// IsZero reports whether the platform is unknown.
func (p Platform) IsZero() bool {
	return p.ID == "" && p.VersionID == ""
}

// String returns "id/version_id" or "unknown".
func (p Platform) String() string {
	if p.IsZero() {
		return "unknown"
	}
	return p.ID + "/" + p.VersionID
}

// EnvOverride sets environment variables for the installer on one platform.
type EnvOverride struct {
	// ID must equal Platform.ID.
	ID string

	// VersionID must equal Platform.VersionID. Empty matches every version of ID.
	VersionID string

	// Env maps variable names to values.
	Env map[string]string
}

// Matches reports whether the override applies to p.
func (o EnvOverride) Matches(p Platform) bool {
	if p.IsZero() || o.ID != p.ID {
		return false
	}
	return o.VersionID == "" || o.VersionID == p.VersionID
}

// DefaultEnvOverrides silences known-benign warnings from the Ruby runtime the installer runs on.
var DefaultEnvOverrides = []EnvOverride{
	{ID: "ubuntu", VersionID: "20.04", Env: map[string]string{"RUBYOPT": "-W0"}},
}

// EnvForPlatform returns the "KEY=VALUE" overrides of every row in table that matches p,
// sorted by key. Later rows win on conflicting keys. A platform matching no row yields nil.
func EnvForPlatform(p Platform, table []EnvOverride) []string {
	merged := make(map[string]string)
	for _, o := range table {
		if !o.Matches(p) {
			continue
		}
		for k, v := range o.Env {
			merged[k] = v
		}
	}

	if len(merged) == 0 {
		return nil
	}

	env := make([]string, 0, len(merged))
	for k, v := range merged {
		env = append(env, k+"="+v)
	}
	slices.Sort(env)
	return env
}
