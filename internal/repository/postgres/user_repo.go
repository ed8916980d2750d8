package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

// UpsertBySubject inserts the user or refreshes email/display name when a
// row with the same provider subject already exists, and returns the stored
// row so callers always see the canonical ID.
func (r *userRepository) UpsertBySubject(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	var stored domain.User
	if err := r.db.WithContext(ctx).First(&stored, "subject = ?", user.Subject).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
