package cache_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/cache"
	"github.com/riya/garba-tracker-website/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCache_GetPut(t *testing.T) {
	c := cache.NewListCache(5 * time.Minute)
	userID := uuid.New()

	_, ok := c.Get(userID)
	assert.False(t, ok, "empty cache should miss")

	sessions := []*domain.PracticeSession{{ID: uuid.New(), UserID: userID}}
	c.Put(userID, sessions)

	got, ok := c.Get(userID)
	require.True(t, ok)
	assert.Equal(t, sessions, got)

	// Other users never share an entry
	_, ok = c.Get(uuid.New())
	assert.False(t, ok)
}

func TestListCache_Expiry(t *testing.T) {
	c := cache.NewListCache(5 * time.Minute)
	userID := uuid.New()

	base := time.Now()
	current := base
	c.SetClock(func() time.Time { return current })

	c.Put(userID, []*domain.PracticeSession{{ID: uuid.New(), UserID: userID}})

	current = base.Add(4 * time.Minute)
	_, ok := c.Get(userID)
	assert.True(t, ok, "entry inside the window should hit")

	current = base.Add(6 * time.Minute)
	_, ok = c.Get(userID)
	assert.False(t, ok, "entry past the window should miss")
}

func TestListCache_Invalidate(t *testing.T) {
	c := cache.NewListCache(5 * time.Minute)
	userID := uuid.New()
	other := uuid.New()

	c.Put(userID, []*domain.PracticeSession{{ID: uuid.New(), UserID: userID}})
	c.Put(other, []*domain.PracticeSession{{ID: uuid.New(), UserID: other}})

	c.Invalidate(userID)

	_, ok := c.Get(userID)
	assert.False(t, ok, "invalidated entry should miss immediately")

	_, ok = c.Get(other)
	assert.True(t, ok, "invalidation is scoped to one user")
}
