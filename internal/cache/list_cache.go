// Package cache memoizes per-user record lists between page renders.
// Correctness depends only on mutating calls invoking Invalidate, not on
// the TTL, which exists to bound staleness from out-of-band edits.
package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/domain"
)

type entry struct {
	sessions []*domain.PracticeSession
	loadedAt time.Time
}

// ListCache caches the result of listing a user's practice sessions, keyed
// by user ID with a fixed expiry window.
type ListCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]entry
	now     func() time.Time
}

func NewListCache(ttl time.Duration) *ListCache {
	return &ListCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]entry),
		now:     time.Now,
	}
}

// Get returns the cached list for userID, or false when no entry exists or
// the entry has expired.
func (c *ListCache) Get(userID uuid.UUID) ([]*domain.PracticeSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.loadedAt) > c.ttl {
		delete(c.entries, userID)
		return nil, false
	}
	return e.sessions, true
}

// Put stores the list for userID, starting a fresh expiry window.
func (c *ListCache) Put(userID uuid.UUID, sessions []*domain.PracticeSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = entry{sessions: sessions, loadedAt: c.now()}
}

// Invalidate drops the entry for userID so the next read goes to the store.
func (c *ListCache) Invalidate(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

// SetClock overrides the cache's clock. Tests use it to step past the TTL
// without sleeping.
func (c *ListCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
