package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quant/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/quant/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/quant/internal/adapters/redisfeed" //nolint:depguard // Wired in app layer
	"go.trai.ch/quant/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/quant/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/quant/internal/engine/valuation"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			valuation.NodeID,
			redisfeed.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
			redisfeed.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	valuer, err := graft.Dep[*valuation.Valuer](ctx)
	if err != nil {
		return nil, err
	}

	feed, err := graft.Dep[ports.QuoteFeed](ctx)
	if err != nil {
		return nil, err
	}

	bookWatcher, err := graft.Dep[ports.BookWatcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, valuer, feed, bookWatcher, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	feed, err := graft.Dep[ports.QuoteFeed](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: tel,
		Feed:      feed,
	}, nil
}
