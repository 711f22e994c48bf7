package app

import (
	"context"
	"errors"

	"github.com/grindlemire/graft"
	"go.trai.ch/quant/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
	Feed      ports.QuoteFeed
}

// NewApp resolves the application components from the registered Graft nodes.
func NewApp(ctx context.Context) (*Components, error) {
	components, _, err := graft.ExecuteFor[*Components](ctx)
	if err != nil {
		return nil, err
	}
	return components, nil
}

// Close flushes the telemetry recording and releases the quote feed.
func (c *Components) Close() error {
	return errors.Join(c.Telemetry.Close(), c.Feed.Close())
}
