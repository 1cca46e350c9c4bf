package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modcache/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/deps"      //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/lock"      //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/platform"  //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/publish"   //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/puppet"    //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/modcache/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the command line entry point needs from the graph.
type Components struct {
	App     *App
	Logger  ports.Logger
	Tracing *telemetry.Provider
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			deps.NodeID,
			puppet.ProberNodeID,
			puppet.InstallerNodeID,
			cas.NodeID,
			publish.NodeID,
			lock.NodeID,
			platform.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracing, err := graft.Dep[*telemetry.Provider](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log, Tracing: tracing}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settingsLoader, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	depsLoader, err := graft.Dep[ports.DependencyLoader](ctx)
	if err != nil {
		return nil, err
	}

	prober, err := graft.Dep[ports.ToolProber](ctx)
	if err != nil {
		return nil, err
	}

	installer, err := graft.Dep[ports.Installer](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.EntryStore](ctx)
	if err != nil {
		return nil, err
	}

	publisher, err := graft.Dep[ports.Publisher](ctx)
	if err != nil {
		return nil, err
	}

	locker, err := graft.Dep[ports.Locker](ctx)
	if err != nil {
		return nil, err
	}

	detector, err := graft.Dep[ports.PlatformDetector](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.TreeHasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracing, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	a := New(settingsLoader, depsLoader, prober, installer, store, publisher, locker, detector, hasher, log)
	return a.WithTracer(tracing.Tracer(TracerName)), nil
}
