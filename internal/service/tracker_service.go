package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/cache"
	"github.com/riya/garba-tracker-website/internal/domain"
	"github.com/riya/garba-tracker-website/internal/repository"
)

// TrackerService is the CRUD surface over practice session records. Reads
// go through the per-user list cache; every successful mutation invalidates
// it before the caller re-renders, so the UI is never stale after a
// user-initiated change. Failed mutations leave the cache untouched.
type TrackerService struct {
	repo  repository.PracticeSessionRepository
	cache *cache.ListCache
}

func NewTrackerService(repo repository.PracticeSessionRepository, listCache *cache.ListCache) *TrackerService {
	return &TrackerService{repo: repo, cache: listCache}
}

// SessionInput carries the user-editable fields of a record. ID and owner
// are never part of it.
type SessionInput struct {
	Date            string
	DurationMinutes int
	Intensity       string
	Mood            string
	Calories        int
	SongsNotes      string
}

func (in SessionInput) validate() error {
	if _, err := time.Parse(domain.DateLayout, in.Date); err != nil {
		return domain.ErrInvalidDate
	}
	if in.DurationMinutes < domain.MinDurationMinutes || in.DurationMinutes > domain.MaxDurationMinutes {
		return domain.ErrInvalidDuration
	}
	if !domain.ValidIntensity(in.Intensity) {
		return domain.ErrInvalidIntensity
	}
	if !domain.ValidMood(in.Mood) {
		return domain.ErrInvalidMood
	}
	if in.Calories < 0 {
		return domain.ErrInvalidCalories
	}
	return nil
}

// List returns the user's records, from cache when fresh.
func (s *TrackerService) List(ctx context.Context, userID uuid.UUID) ([]*domain.PracticeSession, error) {
	if sessions, ok := s.cache.Get(userID); ok {
		return sessions, nil
	}

	sessions, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(userID, sessions)
	return sessions, nil
}

// Create validates the input, assigns a fresh session ID, stamps the owner,
// and appends the record.
func (s *TrackerService) Create(ctx context.Context, userID uuid.UUID, input SessionInput) (*domain.PracticeSession, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	session := &domain.PracticeSession{
		ID:              uuid.New(),
		UserID:          userID,
		Date:            input.Date,
		DurationMinutes: input.DurationMinutes,
		Intensity:       input.Intensity,
		Mood:            input.Mood,
		Calories:        input.Calories,
		SongsNotes:      input.SongsNotes,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.cache.Invalidate(userID)
	return session, nil
}

// Get returns the record only when it belongs to userID.
func (s *TrackerService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrNotSessionOwner
	}
	return session, nil
}

// Update rewrites the non-key fields of the user's record.
func (s *TrackerService) Update(ctx context.Context, userID, sessionID uuid.UUID, input SessionInput) error {
	if err := input.validate(); err != nil {
		return err
	}

	existing, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return err
	}

	existing.Date = input.Date
	existing.DurationMinutes = input.DurationMinutes
	existing.Intensity = input.Intensity
	existing.Mood = input.Mood
	existing.Calories = input.Calories
	existing.SongsNotes = input.SongsNotes

	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}

	s.cache.Invalidate(userID)
	return nil
}

// Delete removes the user's record.
func (s *TrackerService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, sessionID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.cache.Invalidate(userID)
	return nil
}
