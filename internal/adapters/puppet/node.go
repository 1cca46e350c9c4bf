package puppet

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modcache/internal/adapters/shell"
	"go.trai.ch/modcache/internal/core/ports"
)

const (
	// InstallerNodeID is the unique identifier for the installer Graft node.
	InstallerNodeID graft.ID = "adapter.installer"

	// ProberNodeID is the unique identifier for the tool prober Graft node.
	ProberNodeID graft.ID = "adapter.tool_prober"
)

func init() {
	graft.Register(graft.Node[ports.Installer]{
		ID:        InstallerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Installer, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(executor), nil
		},
	})

	graft.Register(graft.Node[ports.ToolProber]{
		ID:        ProberNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.ToolProber, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewProber(executor), nil
		},
	})
}
