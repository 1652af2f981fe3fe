// Package storage persists small JSON values, such as the cart, under a fixed key.
//
// A Storage never fails its caller: a medium that errors,
// or a stored value that cannot be decoded,
// is logged and reads as if nothing was stored.
package storage

import (
	"context"
	"encoding/json"

	"github.com/xy-planning-network/storefront/logger"
)

// A Medium stores string values by key.
// GetItem reports false when nothing is stored under key.
type Medium interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, val string) error
	RemoveItem(ctx context.Context, key string) error
}

// A Storage reads and writes one JSON value under key in a Medium.
type Storage struct {
	key    string
	medium Medium
	logger logger.Logger
}

// New constructs a *Storage for key on medium.
// A nil medium stores nothing; see Noop.
func New(key string, medium Medium, l logger.Logger) *Storage {
	if medium == nil {
		medium = Noop{}
	}

	if l == nil {
		l = logger.NewDiscard()
	}

	return &Storage{key: key, medium: medium, logger: l}
}

// Key returns the key s stores under.
func (s *Storage) Key() string { return s.key }

// Get decodes the stored value into dest
// and reports whether there was a value to decode.
// A value that is not valid JSON for dest reports false.
func (s *Storage) Get(ctx context.Context, dest any) bool {
	val, ok, err := s.medium.GetItem(ctx, s.key)
	if err != nil {
		s.logger.Error("cannot read storage item", s.logContext(err))
		return false
	}

	if !ok || val == "" {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		s.logger.Error("cannot parse storage item", s.logContext(err))
		return false
	}

	return true
}

// Set encodes v as JSON and stores it.
func (s *Storage) Set(ctx context.Context, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("cannot encode storage item", s.logContext(err))
		return
	}

	if err := s.medium.SetItem(ctx, s.key, string(b)); err != nil {
		s.logger.Error("cannot set storage item", s.logContext(err))
	}
}

// Reset removes the stored value.
func (s *Storage) Reset(ctx context.Context) {
	if err := s.medium.RemoveItem(ctx, s.key); err != nil {
		s.logger.Error("cannot remove storage item", s.logContext(err))
	}
}

func (s *Storage) logContext(err error) *logger.LogContext {
	return &logger.LogContext{Error: err, Data: map[string]any{"key": s.key}}
}
