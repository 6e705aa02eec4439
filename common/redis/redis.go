package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/coastlabs/coast-crawler/common/config"
	"github.com/redis/go-redis/v9"
)

// seenKeyTTL bounds how long a seen-set entry outlives the crawl session.
const seenKeyTTL = 24 * time.Hour

// RedisClient wraps the go-redis client with frontier-specific helpers
type RedisClient struct {
	client *redis.Client
}

// NewClient creates a new Redis client instance
func NewClient(cfg config.Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
	}, nil
}

// Close closes the Redis client connection
func (c *RedisClient) Close() error {
	return c.client.Close()
}

func seenKey(url string) string {
	return "crawler:seen:" + url
}

// MarkSeen records a URL in the seen cache. The cache is only ever written
// after the corresponding durable store write succeeded, so it is always a
// subset of the visited/blocked truth and safe to consult as a fast path.
func (c *RedisClient) MarkSeen(ctx context.Context, url string) error {
	return c.client.Set(ctx, seenKey(url), 1, seenKeyTTL).Err()
}

// WasSeen reports whether a URL is in the seen cache. A cache miss means
// nothing; the caller falls through to the durable store.
func (c *RedisClient) WasSeen(ctx context.Context, url string) (bool, error) {
	result, err := c.client.Exists(ctx, seenKey(url)).Result()
	return result > 0, err
}

// GetClient returns the underlying Redis client
func (c *RedisClient) GetClient() *redis.Client {
	return c.client
}
