package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quant/internal/adapters/config"
	"go.trai.ch/quant/internal/core/ports"
)

// NodeID is the unique identifier for the valuation store Graft node.
const NodeID graft.ID = "adapter.valuation_store"

func init() {
	graft.Register(graft.Node[ports.ValuationStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ValuationStore, error) {
			settings, err := graft.Dep[config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			store, err := NewStore(settings.StatePath)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
