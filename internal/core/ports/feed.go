package ports

import (
	"context"

	"go.trai.ch/quant/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=feed.go -destination=mocks/mock_feed.go -package=mocks

// QuoteFeed carries market events between publishers and live markets.
type QuoteFeed interface {
	// Subscribe starts receiving events. The caller must close the subscription.
	Subscribe(ctx context.Context) (Subscription, error)
	// Publish broadcasts an event to every subscriber.
	Publish(ctx context.Context, ev domain.MarketEvent) error
	// Close releases the feed's connection. Subscriptions must be closed first.
	Close() error
}

// Subscription is an active feed subscription.
type Subscription interface {
	// Events returns the channel of decoded events. It is closed when the subscription ends.
	Events() <-chan domain.MarketEvent
	// Errors returns the channel of non-fatal decoding errors.
	Errors() <-chan error
	// Close stops the subscription. It is safe to call more than once.
	Close() error
}
