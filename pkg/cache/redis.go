package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key written by [RedisCache].
const DefaultRedisPrefix = "metro:"

// RedisCache stores entries in Redis. Expiry is delegated to Redis TTLs.
type RedisCache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	owned  bool // Close also closes the client
}

// RedisOption configures a [RedisCache].
type RedisOption func(*RedisCache)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(c *RedisCache) { c.prefix = prefix }
}

// WithDefaultTTL sets the expiry used when Set is called with a zero ttl.
func WithDefaultTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) { c.ttl = ttl }
}

// NewRedisCache connects to the Redis server at addr and checks that it
// answers.
func NewRedisCache(ctx context.Context, addr, password string, db int, opts ...RedisOption) (*RedisCache, error) {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrBackend, addr, err)
	}
	c := NewRedisCacheFromClient(client, opts...)
	c.owned = true
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client. Close leaves the client
// open.
func NewRedisCacheFromClient(client *backend.Client, opts ...RedisOption) *RedisCache {
	c := &RedisCache{client: client, prefix: DefaultRedisPrefix}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) key(k string) string { return c.prefix + k }

// Get retrieves a value. Network errors are retried.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		v, err := c.client.Get(ctx, c.key(key)).Bytes()
		if err != nil {
			return classify(err)
		}
		data = v
		return nil
	})
	if errors.Is(err, backend.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %v", ErrBackend, err)
	}
	return data, true, nil
}

// Set stores a value.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	err := RetryWithBackoff(ctx, func() error {
		return classify(c.client.Set(ctx, c.key(key), data, ttl).Err())
	})
	if err != nil {
		return fmt.Errorf("%w: set: %v", ErrBackend, err)
	}
	return nil
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: delete: %v", ErrBackend, err)
	}
	return nil
}

// Clear removes every key under the cache prefix and returns how many were
// removed.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	n := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return n, fmt.Errorf("%w: clear: %v", ErrBackend, err)
		}
		n++
	}
	if err := iter.Err(); err != nil {
		return n, fmt.Errorf("%w: clear: %v", ErrBackend, err)
	}
	return n, nil
}

// Close closes the client if the cache created it.
func (c *RedisCache) Close() error {
	if c.owned {
		return c.client.Close()
	}
	return nil
}

// classify marks transient network failures as retryable.
func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Retryable(err)
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
