package ratelimit

import (
	"sync"
	"time"
)

// UnknownKey buckets every client that cannot be identified, so missing
// addresses share one window instead of bypassing the limiter.
const UnknownKey = "unknown"

// Store maps a client key to the timestamps of its recently admitted checks.
// Injecting the store lets multi-process deployments swap in a shared backend.
type Store interface {
	Get(key string) []time.Time
	Put(key string, stamps []time.Time)
	// Sweep drops every key whose newest timestamp is older than cutoff.
	Sweep(cutoff time.Time)
}

// Limiter admits or rejects checks using a sliding time window: a key may be
// admitted at most max times within any trailing window. A rejected check
// consumes no slot.
type Limiter struct {
	mu     sync.Mutex
	store  Store
	max    int
	window time.Duration
}

func New(store Store, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, max: max, window: window}
}

// Allow prunes the key's window to entries newer than now-window, then admits
// and records the check if fewer than max remain. The prune runs on every
// call, including rejected ones, so each key's list stays bounded to recent
// activity.
func (l *Limiter) Allow(key string, now time.Time) bool {
	if key == "" {
		key = UnknownKey
	}

	// The get-prune-put sequence must not interleave across goroutines or
	// concurrent checks could admit past the threshold.
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	stamps := l.store.Get(key)

	recent := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		l.store.Put(key, recent)
		return false
	}

	l.store.Put(key, append(recent, now))
	return true
}

// Window returns the limiter's trailing window duration.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// MemoryStore is the in-process Store implementation. A single mutex
// serializes the read-then-write of each check so concurrent requests cannot
// over-admit past the threshold.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string][]time.Time)}
}

func (s *MemoryStore) Get(key string) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamps := s.windows[key]
	out := make([]time.Time, len(stamps))
	copy(out, stamps)
	return out
}

func (s *MemoryStore) Put(key string, stamps []time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(stamps) == 0 {
		delete(s.windows, key)
		return
	}
	s.windows[key] = stamps
}

// Sweep evicts keys with no activity since cutoff. Without it the table grows
// for the life of the process, one entry per distinct client ever seen.
func (s *MemoryStore) Sweep(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, stamps := range s.windows {
		stale := true
		for _, ts := range stamps {
			if ts.After(cutoff) {
				stale = false
				break
			}
		}
		if stale {
			delete(s.windows, key)
		}
	}
}
