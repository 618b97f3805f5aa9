// Package ratelimit implements the per-source token bucket guarding the
// contact intake endpoint. State is process-local and ephemeral: buckets are
// created lazily, live for the process lifetime, and are lost on restart.
// This is abuse deterrence, not accounting.
package ratelimit

import (
	"sync"
	"time"
)

// Compiled-in limits: 5 submissions per source per 10-minute window.
const (
	Capacity = 5
	Window   = 10 * time.Minute
)

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// Store is an injectable token-bucket store. Instantiate independent stores
// in tests instead of sharing package state.
type Store struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity int
	window   time.Duration
	now      func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source, for window-expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLimit overrides the compiled-in capacity and window.
func WithLimit(capacity int, window time.Duration) Option {
	return func(s *Store) {
		s.capacity = capacity
		s.window = window
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		buckets:  make(map[string]*bucket),
		capacity: Capacity,
		window:   Window,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow consumes one token for sourceID, reporting whether the request may
// proceed. Refill is a hard reset to full capacity once the window has
// elapsed since the last refill, not a proportional leak.
//
// Source identifiers derive from client-influenced headers, so this cannot
// be the sole anti-abuse measure.
func (s *Store) Allow(sourceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.buckets[sourceID]
	if !ok {
		b = &bucket{tokens: s.capacity, lastRefill: now}
		s.buckets[sourceID] = b
	}
	if now.Sub(b.lastRefill) > s.window {
		b.tokens = s.capacity
		b.lastRefill = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// ResetAll drops every bucket. Administrative/test use only.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[string]*bucket)
}
