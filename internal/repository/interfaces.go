package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/domain"
)

type UserRepository interface {
	UpsertBySubject(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type PracticeSessionRepository interface {
	Create(ctx context.Context, session *domain.PracticeSession) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.PracticeSession, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PracticeSession, error)
	Update(ctx context.Context, session *domain.PracticeSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User            UserRepository
	Session         SessionRepository
	PracticeSession PracticeSessionRepository
}
