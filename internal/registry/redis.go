package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "cavesystem:caves"

// RedisRegistrar registers by adding the endpoint to a Redis set.
type RedisRegistrar struct {
	client *redis.Client
	key    string
}

func NewRedisRegistrar(client *redis.Client, key string) *RedisRegistrar {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisRegistrar{
		client: client,
		key:    key,
	}
}

func (r *RedisRegistrar) Register(ctx context.Context, endpoint string) error {
	added, err := r.client.SAdd(ctx, r.key, endpoint).Result()
	if err != nil {
		return fmt.Errorf("adding %s to %q: %w", endpoint, r.key, err)
	}

	slog.InfoContext(ctx, "registered with cave system", "endpoint", endpoint, "key", r.key, "new", added == 1)
	return nil
}

// Close releases the Redis connection pool.
func (r *RedisRegistrar) Close() error {
	return r.client.Close()
}
