// Package viewstate keeps mounted controllers per browser session between
// requests.
package viewstate

import (
	"sync"
	"time"
)

// Key addresses one mounted view of one session.
type Key struct {
	Session string
	View    string
}

type entry struct {
	mu       sync.Mutex
	value    interface{}
	lastUsed time.Time
}

// Store holds view state in memory. Entries idle for longer than the TTL are
// treated as gone and are removed by Sweep.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	ttl     time.Duration
	now     func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[Key]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put mounts value under key, replacing whatever was there.
func (s *Store) Put(key Key, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &entry{value: value, lastUsed: s.now()}
}

func (s *Store) Delete(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops expired entries and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastUsed) > s.ttl
}

// acquire returns the live entry for key, creating an empty one when it is
// missing or expired, and marks it used.
func (s *Store) acquire(key Key) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || s.expired(e, now) {
		e = &entry{}
		s.entries[key] = e
	}
	e.lastUsed = now
	return e
}

// Use runs fn with the value mounted under key while holding the entry's
// lock, so one view is never driven by two requests at once. When nothing of
// type T is mounted, mount creates it first.
func Use[T any](s *Store, key Key, mount func() T, fn func(T) error) error {
	e := s.acquire(key)

	e.mu.Lock()
	defer e.mu.Unlock()

	value, ok := e.value.(T)
	if !ok {
		value = mount()
		e.value = value
	}
	return fn(value)
}
