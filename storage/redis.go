package storage

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultTTL is how long a Redis medium keeps a value after it was last set.
const DefaultTTL = 30 * 24 * time.Hour

// A RedisClient is the part of *redis.Client a Redis medium uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis is a Medium backed by a Redis server.
// Keys are stored under a prefix, such as a visitor's session ID.
type Redis struct {
	client RedisClient
	prefix string
	ttl    time.Duration
}

// NewRedis constructs a Redis medium storing keys under prefix.
// A ttl of zero uses DefaultTTL.
func NewRedis(client RedisClient, prefix string, ttl time.Duration) Redis {
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return Redis{client: client, prefix: prefix, ttl: ttl}
}

// NewRedisClient connects a *redis.Client to url, a redis:// URL,
// using password when url carries none.
func NewRedisClient(url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	if opts.Password == "" {
		opts.Password = password
	}

	return redis.NewClient(opts), nil
}

func (r Redis) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return v, true, nil
}

func (r Redis) SetItem(ctx context.Context, key, val string) error {
	return r.client.Set(ctx, r.prefix+key, val, r.ttl).Err()
}

func (r Redis) RemoveItem(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
