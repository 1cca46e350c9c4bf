// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/modcache/internal/adapters/cas"
	_ "go.trai.ch/modcache/internal/adapters/config"
	_ "go.trai.ch/modcache/internal/adapters/deps"
	_ "go.trai.ch/modcache/internal/adapters/fs"
	_ "go.trai.ch/modcache/internal/adapters/lock"
	_ "go.trai.ch/modcache/internal/adapters/logger"
	_ "go.trai.ch/modcache/internal/adapters/platform"
	_ "go.trai.ch/modcache/internal/adapters/publish"
	_ "go.trai.ch/modcache/internal/adapters/puppet"
	_ "go.trai.ch/modcache/internal/adapters/shell"
	_ "go.trai.ch/modcache/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/modcache/internal/app"
)
