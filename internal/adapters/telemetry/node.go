// Package telemetry selects the recorder that tracks valuation runs.
package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quant/internal/adapters/config"
	"go.trai.ch/quant/internal/adapters/telemetry/progrock"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the telemetry adapter Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			settings, err := graft.Dep[config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.Telemetry)
		},
	})
}

// New returns the recorder for backend.
func New(backend string) (ports.Telemetry, error) {
	switch backend {
	case config.TelemetryProgrock:
		return progrock.New(), nil
	case config.TelemetryOff:
		return NewNoOp(), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownKind, "unknown telemetry backend"), "backend", backend)
	}
}
