package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis client with the counter operations used by the service
type Client struct {
	rdb    *redis.Client
	config *Config
}

// NewClient creates a new Redis client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Sprintf("invalid Redis configuration: %v", err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:           config.Addr(),
		Password:       config.Password,
		DB:             config.Database,
		MinIdleConns:   config.MinIdleConns,
		MaxIdleConns:   config.MaxIdleConns,
		MaxActiveConns: config.MaxActive,
		MaxRetries:     config.MaxRetries,
		DialTimeout:    config.DialTimeout,
		ReadTimeout:    config.ReadTimeout,
		WriteTimeout:   config.WriteTimeout,
		PoolTimeout:    config.PoolTimeout,
	})

	return &Client{
		rdb:    rdb,
		config: config,
	}
}

// Ping tests the connection to Redis
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis client connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetConfig returns the Redis configuration
func (c *Client) GetConfig() *Config {
	return c.config
}

// GetInt retrieves an integer value by key. A missing key reads as 0.
func (c *Client) GetInt(ctx context.Context, key string) (int64, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// IncrWithExpire increments key and refreshes its TTL in a single transaction
func (c *Client) IncrWithExpire(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, expiration)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Delete removes one or more keys
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}
