package ports

import "go.trai.ch/modcache/internal/core/domain"

// PlatformDetector identifies the host distribution.
//
//go:generate go run go.uber.org/mock/mockgen -source=platform.go -destination=mocks/mock_platform.go -package=mocks
type PlatformDetector interface {
	// Detect returns the host platform, or the zero Platform when it cannot be identified.
	Detect() (domain.Platform, error)
}
