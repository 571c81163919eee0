// Package redis backs the submission deduplication guard. Retries of the
// same transfer are a normal control path of the retry loop, so every
// ledger call is fenced by an idempotency key before it goes out.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps Redis operations for the relayer.
type Client struct {
	rdb *redis.Client
}

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// NewClient creates a new Redis client.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

func submissionKey(transferID, call string) string {
	return fmt.Sprintf("submitted:%s:%s", transferID, call)
}

// Acquire fences one ledger call for a transfer. It returns false when an
// identical call already went out within the TTL window.
func (c *Client) Acquire(
	ctx context.Context,
	transferID, call string,
	ttl time.Duration,
) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, submissionKey(transferID, call), "in-flight", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx failed: %w", err)
	}
	return ok, nil
}

// Release drops the fence so a failed call can be attempted again in a
// later round.
func (c *Client) Release(ctx context.Context, transferID, call string) error {
	return c.rdb.Del(ctx, submissionKey(transferID, call)).Err()
}
