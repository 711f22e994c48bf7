package valuation

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quant/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quant/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quant/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quant/internal/core/ports"
)

// NodeID is the unique identifier for the valuer Graft node.
const NodeID graft.ID = "engine.valuation"

func init() {
	graft.Register(graft.Node[*Valuer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.HasherNodeID,
			cas.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Valuer, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ValuationStore](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(hasher, store, tel), nil
		},
	})
}
