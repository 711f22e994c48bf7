package redisfeed

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/redis/go-redis/v9"
	"go.trai.ch/quant/internal/adapters/config"
	"go.trai.ch/quant/internal/core/ports"
)

// NodeID is the unique identifier for the Redis quote feed Graft node.
const NodeID graft.ID = "adapter.redis_feed"

func init() {
	graft.Register(graft.Node[ports.QuoteFeed]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.QuoteFeed, error) {
			settings, err := graft.Dep[config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			rdb := redis.NewClient(&redis.Options{Addr: settings.RedisAddr})
			return New(rdb, settings.RedisChannel), nil
		},
	})
}
