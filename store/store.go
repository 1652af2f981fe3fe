// Package store holds the browser model's product and cart state.
//
// A Store applies Actions through a reducer and notifies subscribers after each one.
// The product store is seeded once from server-rendered data; see package hydrate.
package store

import "sync"

// An ActionType names what an Action does to state.
type ActionType string

// An Action is a request to change a Store's state.
type Action struct {
	Type    ActionType
	Payload any
}

// A Reducer computes the next state from the current one and an Action.
// A Reducer returns state unchanged for an Action it does not handle.
type Reducer[S any] func(state S, a Action) S

// A Store owns state S and changes it only through Dispatch.
//
// A Store is safe for concurrent use.
type Store[S any] struct {
	mu        sync.Mutex
	state     S
	reduce    Reducer[S]
	listeners []func()
}

// New constructs a *Store starting at initial.
func New[S any](initial S, reduce Reducer[S]) *Store[S] {
	return &Store[S]{state: initial, reduce: reduce}
}

// Dispatch applies a and then calls every subscriber, in the order they subscribed.
// Subscribers run after the state changes, outside of the Store's lock.
func (s *Store[S]) Dispatch(a Action) {
	s.mu.Lock()
	s.state = s.reduce(s.state, a)
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// State returns the current state.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Subscribe adds fn to the functions called after every Dispatch.
func (s *Store[S]) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
}
