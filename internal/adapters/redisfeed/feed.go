// Package redisfeed carries market events over Redis Pub/Sub.
package redisfeed

import (
	"context"
	"errors"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/zerr"
)

var json = jsoniter.ConfigDefault

// bufferSize is the capacity of a subscription's event and error channels.
const bufferSize = 10

var _ ports.QuoteFeed = (*Feed)(nil)

// Feed publishes and receives market events on a single Redis channel.
// Delivery is at-most-once: subscribers that are not connected miss events.
type Feed struct {
	rdb     *redis.Client
	channel string
}

// New creates a Feed on channel using rdb.
func New(rdb *redis.Client, channel string) *Feed {
	return &Feed{rdb: rdb, channel: channel}
}

// Channel returns the Redis channel the feed uses.
func (f *Feed) Channel() string {
	return f.channel
}

// Close releases the Redis connection pool.
func (f *Feed) Close() error {
	if err := f.rdb.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close redis client"), "channel", f.channel)
	}
	return nil
}

// Publish broadcasts ev to every subscriber.
func (f *Feed) Publish(ctx context.Context, ev domain.MarketEvent) error {
	if ev.Kind == "" {
		return zerr.With(zerr.Wrap(ErrInvalidEvent, "event has no kind"), "name", ev.Name)
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return zerr.Wrap(err, "failed to encode market event")
	}
	if err := f.rdb.Publish(ctx, f.channel, payload).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to publish market event"), "channel", f.channel)
	}
	return nil
}

// Subscribe subscribes to the feed's channel. It returns once Redis has
// confirmed the subscription, so events published afterwards are delivered.
// Cancelling ctx also stops the subscription.
func (f *Feed) Subscribe(ctx context.Context) (ports.Subscription, error) {
	pubsub := f.rdb.Subscribe(ctx, f.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to subscribe"), "channel", f.channel)
	}

	events := make(chan domain.MarketEvent, bufferSize)
	errs := make(chan error, bufferSize)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(events)
		defer close(errs)
		defer pubsub.Close() //nolint:errcheck // Best effort close on shutdown

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var ev domain.MarketEvent
				if err := json.UnmarshalFromString(msg.Payload, &ev); err != nil {
					select {
					case errs <- zerr.With(zerr.Wrap(errors.Join(ErrDecodeEvent, err), "skipping message"), "channel", msg.Channel):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case events <- ev:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{events: events, errors: errs, cancel: cancel}, nil
}

// Subscription is an active feed subscription.
type Subscription struct {
	events <-chan domain.MarketEvent
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of decoded events.
func (s *Subscription) Events() <-chan domain.MarketEvent {
	return s.events
}

// Errors returns the channel of decoding errors. The subscription continues after an error.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}
