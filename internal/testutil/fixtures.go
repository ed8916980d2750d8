package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/domain"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	subject     string
	email       string
	displayName string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		subject:     fmt.Sprintf("subject-%s", suffix),
		email:       fmt.Sprintf("dancer-%s@example.com", suffix),
		displayName: fmt.Sprintf("Dancer %s", suffix),
	}
}

// WithSubject sets the identity provider subject
func (b *UserBuilder) WithSubject(subject string) *UserBuilder {
	b.subject = subject
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:          uuid.New(),
		Subject:     b.subject,
		Email:       b.email,
		DisplayName: b.displayName,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// PracticeSessionBuilder creates test practice sessions
type PracticeSessionBuilder struct {
	userID    uuid.UUID
	date      string
	duration  int
	intensity string
	mood      string
	calories  int
	notes     string
}

// NewPracticeSessionBuilder creates a builder with sensible defaults
func NewPracticeSessionBuilder(userID uuid.UUID) *PracticeSessionBuilder {
	return &PracticeSessionBuilder{
		userID:    userID,
		date:      "2024-01-01",
		duration:  60,
		intensity: string(domain.IntensityMedium),
		mood:      string(domain.MoodHappy),
		calories:  300,
	}
}

func (b *PracticeSessionBuilder) WithDate(date string) *PracticeSessionBuilder {
	b.date = date
	return b
}

func (b *PracticeSessionBuilder) WithDuration(minutes int) *PracticeSessionBuilder {
	b.duration = minutes
	return b
}

func (b *PracticeSessionBuilder) WithIntensity(intensity string) *PracticeSessionBuilder {
	b.intensity = intensity
	return b
}

func (b *PracticeSessionBuilder) WithMood(mood string) *PracticeSessionBuilder {
	b.mood = mood
	return b
}

func (b *PracticeSessionBuilder) WithCalories(calories int) *PracticeSessionBuilder {
	b.calories = calories
	return b
}

func (b *PracticeSessionBuilder) WithNotes(notes string) *PracticeSessionBuilder {
	b.notes = notes
	return b
}

// Build creates the practice session in the database
func (b *PracticeSessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.PracticeSession {
	t.Helper()

	session := &domain.PracticeSession{
		ID:              uuid.New(),
		UserID:          b.userID,
		Date:            b.date,
		DurationMinutes: b.duration,
		Intensity:       b.intensity,
		Mood:            b.mood,
		Calories:        b.calories,
		SongsNotes:      b.notes,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create test practice session: %v", err)
	}
	return session
}
