package storage_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/storefront/logger"
	"github.com/xy-planning-network/storefront/storage"
)

type cart struct {
	Items []string `json:"items"`
}

func newLogger(b *bytes.Buffer) logger.Logger {
	return logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))
}

func TestStorageMemory(t *testing.T) {
	// Arrange
	ctx := context.Background()
	s := storage.New("cart", storage.NewMemory(), nil)

	// Act
	var before cart
	found := s.Get(ctx, &before)

	// Assert
	require.False(t, found)

	// Act
	s.Set(ctx, cart{Items: []string{"1", "2"}})
	var after cart
	found = s.Get(ctx, &after)

	// Assert
	require.True(t, found)
	require.Equal(t, cart{Items: []string{"1", "2"}}, after)

	// Act
	s.Reset(ctx)
	found = s.Get(ctx, &after)

	// Assert
	require.False(t, found)
}

func TestStorageMalformed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	b := new(bytes.Buffer)
	m := storage.NewMemory()
	require.Nil(t, m.SetItem(ctx, "cart", "{not json"))
	s := storage.New("cart", m, newLogger(b))

	// Act
	var c cart
	found := s.Get(ctx, &c)

	// Assert
	require.False(t, found)
	require.Contains(t, b.String(), "cannot parse storage item")
}

func TestStorageNoop(t *testing.T) {
	// Arrange
	ctx := context.Background()
	s := storage.New("cart", nil, nil)

	// Act
	s.Set(ctx, cart{Items: []string{"1"}})
	var c cart
	found := s.Get(ctx, &c)
	s.Reset(ctx)

	// Assert
	require.False(t, found)
	require.Equal(t, cart{}, c)
}

func TestStorageSwallowsMediumErrors(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := new(bytes.Buffer)
	s := storage.New("cart", storage.NewMemory(), newLogger(b))

	// Act
	var c cart
	require.NotPanics(t, func() {
		s.Set(ctx, cart{})
		s.Get(ctx, &c)
		s.Reset(ctx)
	})

	// Assert
	require.Contains(t, b.String(), "cannot set storage item")
	require.Contains(t, b.String(), "cannot read storage item")
	require.Contains(t, b.String(), "cannot remove storage item")
}

type fakeRedis struct {
	items map[string]string
	ttls  map[string]time.Duration
	err   error
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}

	v, ok := f.items[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}

	f.items[key] = value.(string)
	f.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}

	for _, k := range keys {
		delete(f.items, k)
	}

	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedis(t *testing.T) {
	// Arrange
	ctx := context.Background()
	client := &fakeRedis{items: make(map[string]string), ttls: make(map[string]time.Duration)}
	s := storage.New("cart", storage.NewRedis(client, "visitor:1:", 0), nil)

	// Act
	s.Set(ctx, cart{Items: []string{"9"}})

	// Assert
	require.Equal(t, `{"items":["9"]}`, client.items["visitor:1:cart"])
	require.Equal(t, storage.DefaultTTL, client.ttls["visitor:1:cart"])

	// Act
	var c cart
	found := s.Get(ctx, &c)

	// Assert
	require.True(t, found)
	require.Equal(t, []string{"9"}, c.Items)

	// Act
	s.Reset(ctx)
	found = s.Get(ctx, &c)

	// Assert
	require.False(t, found)
}

func TestRedisErrors(t *testing.T) {
	// Arrange
	ctx := context.Background()
	client := &fakeRedis{err: errors.New("connection refused")}
	b := new(bytes.Buffer)
	s := storage.New("cart", storage.NewRedis(client, "", time.Minute), newLogger(b))

	// Act
	var c cart
	found := s.Get(ctx, &c)
	s.Set(ctx, c)

	// Assert
	require.False(t, found)
	require.Contains(t, b.String(), "connection refused")
}

func TestNewRedisClient(t *testing.T) {
	// Act
	client, err := storage.NewRedisClient("redis://localhost:6379/0", "secret")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "secret", client.Options().Password)
	require.Nil(t, client.Close())

	// Act
	_, err = storage.NewRedisClient("http://nope", "")

	// Assert
	require.NotNil(t, err)
}

func TestScope(t *testing.T) {
	// Arrange
	ctx := context.Background()
	m := storage.NewMemory()
	first := storage.New("cart", storage.Scope(m, "visitor:1:"), nil)
	second := storage.New("cart", storage.Scope(m, "visitor:2:"), nil)

	// Act
	first.Set(ctx, cart{Items: []string{"1"}})

	// Assert
	var c cart
	require.False(t, second.Get(ctx, &c))
	require.True(t, first.Get(ctx, &c))
	require.Equal(t, []string{"1"}, c.Items)

	v, ok, err := m.GetItem(ctx, "visitor:1:cart")
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, `{"items":["1"]}`, v)

	// Act
	first.Reset(ctx)

	// Assert
	_, ok, err = m.GetItem(ctx, "visitor:1:cart")
	require.Nil(t, err)
	require.False(t, ok)
}
