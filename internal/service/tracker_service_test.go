package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/cache"
	"github.com/riya/garba-tracker-website/internal/domain"
	"github.com/riya/garba-tracker-website/internal/repository/postgres"
	"github.com/riya/garba-tracker-website/internal/service"
	"github.com/riya/garba-tracker-website/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackerService(t *testing.T) (*service.TrackerService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPracticeSessionRepository(testDB.DB)
	return service.NewTrackerService(repo, cache.NewListCache(5*time.Minute)), testDB
}

func validInput() service.SessionInput {
	return service.SessionInput{
		Date:            "2024-01-01",
		DurationMinutes: 60,
		Intensity:       "Medium",
		Mood:            "Happy",
		Calories:        300,
	}
}

func TestTrackerService_CreateThenList(t *testing.T) {
	svc, testDB := newTrackerService(t)
	ctx := context.Background()

	u1 := testutil.NewUserBuilder().Build(t, testDB.DB)
	u2 := testutil.NewUserBuilder().Build(t, testDB.DB)

	created, err := svc.Create(ctx, u1.ID, validInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	sessions, err := svc.List(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, created.ID, sessions[0].ID)
	assert.Equal(t, "2024-01-01", sessions[0].Date)
	assert.Equal(t, 60, sessions[0].DurationMinutes)
	assert.Equal(t, "Medium", sessions[0].Intensity)
	assert.Equal(t, "Happy", sessions[0].Mood)
	assert.Equal(t, 300, sessions[0].Calories)
	assert.Equal(t, "", sessions[0].SongsNotes)

	// Different user sees an empty log
	other, err := svc.List(ctx, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, other)

	// A second create gets a distinct id
	again, err := svc.Create(ctx, u1.ID, validInput())
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, again.ID)
}

func TestTrackerService_CreateValidation(t *testing.T) {
	svc, testDB := newTrackerService(t)
	ctx := context.Background()
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	tests := []struct {
		name    string
		mutate  func(*service.SessionInput)
		wantErr error
	}{
		{"unparseable date", func(in *service.SessionInput) { in.Date = "01/02/2024" }, domain.ErrInvalidDate},
		{"duration below minimum", func(in *service.SessionInput) { in.DurationMinutes = 0 }, domain.ErrInvalidDuration},
		{"duration above maximum", func(in *service.SessionInput) { in.DurationMinutes = 301 }, domain.ErrInvalidDuration},
		{"unknown intensity", func(in *service.SessionInput) { in.Intensity = "Extreme" }, domain.ErrInvalidIntensity},
		{"unknown mood", func(in *service.SessionInput) { in.Mood = "Exhausted" }, domain.ErrInvalidMood},
		{"negative calories", func(in *service.SessionInput) { in.Calories = -1 }, domain.ErrInvalidCalories},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, err := svc.Create(ctx, user.ID, input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	sessions, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions, "rejected input must not create rows")
}

func TestTrackerService_UpdatePreservesKeys(t *testing.T) {
	svc, testDB := newTrackerService(t)
	ctx := context.Background()
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	created, err := svc.Create(ctx, user.ID, validInput())
	require.NoError(t, err)

	update := validInput()
	update.Date = "2024-03-03"
	update.DurationMinutes = 120
	update.Mood = "Achieved"
	update.SongsNotes = "sanedo"
	require.NoError(t, svc.Update(ctx, user.ID, created.ID, update))

	sessions, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, created.ID, sessions[0].ID)
	assert.Equal(t, user.ID, sessions[0].UserID)
	assert.Equal(t, "2024-03-03", sessions[0].Date)
	assert.Equal(t, 120, sessions[0].DurationMinutes)
	assert.Equal(t, "Achieved", sessions[0].Mood)
	assert.Equal(t, "sanedo", sessions[0].SongsNotes)
}

func TestTrackerService_OwnershipEnforced(t *testing.T) {
	svc, testDB := newTrackerService(t)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().Build(t, testDB.DB)
	intruder := testutil.NewUserBuilder().Build(t, testDB.DB)

	created, err := svc.Create(ctx, owner.ID, validInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Update(ctx, intruder.ID, created.ID, validInput()), domain.ErrNotSessionOwner)
	assert.ErrorIs(t, svc.Delete(ctx, intruder.ID, created.ID), domain.ErrNotSessionOwner)

	sessions, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1, "intruder must not mutate the owner's log")
}

func TestTrackerService_DeleteNonexistent(t *testing.T) {
	svc, testDB := newTrackerService(t)
	ctx := context.Background()
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	created, err := svc.Create(ctx, user.ID, validInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, user.ID, uuid.New()), domain.ErrSessionNotFound)

	sessions, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, created.ID, sessions[0].ID)
}

func TestTrackerService_CacheInvalidation(t *testing.T) {
	svc, testDB := newTrackerService(t)
	ctx := context.Background()
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	// Prime the cache with an empty list
	sessions, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, sessions)

	// A mutation must defeat the cached empty list immediately
	created, err := svc.Create(ctx, user.ID, validInput())
	require.NoError(t, err)

	sessions, err = svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1, "read after create must reflect the mutation")

	update := validInput()
	update.DurationMinutes = 90
	require.NoError(t, svc.Update(ctx, user.ID, created.ID, update))

	sessions, err = svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 90, sessions[0].DurationMinutes, "read after update must reflect the mutation")

	require.NoError(t, svc.Delete(ctx, user.ID, created.ID))

	sessions, err = svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions, "read after delete must reflect the mutation")
}

func TestTrackerService_CacheServesRepeatReads(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPracticeSessionRepository(testDB.DB)
	listCache := cache.NewListCache(5 * time.Minute)
	svc := service.NewTrackerService(repo, listCache)
	ctx := context.Background()
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	testutil.NewPracticeSessionBuilder(user.ID).Build(t, testDB.DB)

	first, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A row written behind the service's back stays invisible until the
	// window expires or a mutation invalidates.
	testutil.NewPracticeSessionBuilder(user.ID).WithDate("2024-06-06").Build(t, testDB.DB)

	second, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, second, 1, "cached list is served inside the window")

	listCache.Invalidate(user.ID)

	third, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, third, 2, "invalidation forces a fresh read")
}
