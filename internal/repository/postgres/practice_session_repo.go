package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/domain"
	"gorm.io/gorm"
)

type practiceSessionRepository struct {
	db *gorm.DB
}

func NewPracticeSessionRepository(db *gorm.DB) *practiceSessionRepository {
	return &practiceSessionRepository{db: db}
}

func (r *practiceSessionRepository) Create(ctx context.Context, session *domain.PracticeSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *practiceSessionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.PracticeSession, error) {
	var sessions []*domain.PracticeSession
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *practiceSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PracticeSession, error) {
	var session domain.PracticeSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Update rewrites the non-key fields of the row matching the session ID.
// ID and UserID are never touched.
func (r *practiceSessionRepository) Update(ctx context.Context, session *domain.PracticeSession) error {
	result := r.db.WithContext(ctx).Model(&domain.PracticeSession{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"date":             session.Date,
			"duration_minutes": session.DurationMinutes,
			"intensity":        session.Intensity,
			"mood":             session.Mood,
			"calories":         session.Calories,
			"songs_notes":      session.SongsNotes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *practiceSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.PracticeSession{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
