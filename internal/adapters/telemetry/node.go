package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel"
	"go.trai.ch/modcache/internal/adapters/logger"
	"go.trai.ch/modcache/internal/core/ports"
)

// NodeID is the unique identifier for the tracing Graft node.
const NodeID graft.ID = "adapter.tracing"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Provider, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			p := NewProvider(log)
			// Register it as the global provider.
			otel.SetTracerProvider(p.TracerProvider())
			return p, nil
		},
	})
}
