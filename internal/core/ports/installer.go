package ports

import (
	"context"

	"go.trai.ch/modcache/internal/core/domain"
)

// Installer places a single versioned module into a cache entry.
//
// Implementations must scope each invocation to req.TargetDir so that installs do not
// observe each other's global state.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install installs req.Module into req.TargetDir.
	Install(ctx context.Context, req domain.InstallRequest) error
}

// ToolProber reports the version of the installer toolchain.
//
// The version is queried fresh on every call because the toolchain can be upgraded
// independently of the dependency file.
type ToolProber interface {
	// ToolVersion returns the trimmed version string reported by the toolchain.
	ToolVersion(ctx context.Context) (string, error)
}
