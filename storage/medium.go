package storage

import (
	"context"
	"sync"
)

var (
	_ Medium = Noop{}
	_ Medium = new(Memory)
	_ Medium = Redis{}
	_ Medium = Scoped{}
)

// Noop is a Medium that stores nothing.
// It stands in for browser storage while rendering on the server.
type Noop struct{}

func (Noop) GetItem(context.Context, string) (string, bool, error) { return "", false, nil }
func (Noop) SetItem(context.Context, string, string) error         { return nil }
func (Noop) RemoveItem(context.Context, string) error              { return nil }

// Memory is a Medium holding values in a map,
// much like a browser's local storage.
//
// Memory is safe for concurrent use. The zero value is ready to use.
type Memory struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemory constructs a *Memory.
func NewMemory() *Memory { return &Memory{items: make(map[string]string)} }

func (m *Memory) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) SetItem(ctx context.Context, key, val string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.items == nil {
		m.items = make(map[string]string)
	}

	m.items[key] = val
	return nil
}

func (m *Memory) RemoveItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// Scoped is a Medium storing every key of another Medium under a prefix,
// so visitors sharing one Medium keep separate values under the same key.
type Scoped struct {
	medium Medium
	prefix string
}

// Scope constructs a Scoped medium storing keys in m under prefix.
func Scope(m Medium, prefix string) Scoped {
	if m == nil {
		m = Noop{}
	}

	return Scoped{medium: m, prefix: prefix}
}

func (s Scoped) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.medium.GetItem(ctx, s.prefix+key)
}

func (s Scoped) SetItem(ctx context.Context, key, val string) error {
	return s.medium.SetItem(ctx, s.prefix+key, val)
}

func (s Scoped) RemoveItem(ctx context.Context, key string) error {
	return s.medium.RemoveItem(ctx, s.prefix+key)
}
