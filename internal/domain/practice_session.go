package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Intensity and mood are stored as open strings so rows written under an
// older enumeration still load; the edit form falls back to a default when
// a stored value is no longer in the allowed set.
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

type Mood string

const (
	MoodEnergized Mood = "Energized"
	MoodHappy     Mood = "Happy"
	MoodTired     Mood = "Tired"
	MoodNeutral   Mood = "Neutral"
	MoodAchieved  Mood = "Achieved"
)

// Intensities lists the allowed intensity values in form order.
var Intensities = []Intensity{IntensityLow, IntensityMedium, IntensityHigh}

// Moods lists the allowed mood values in form order.
var Moods = []Mood{MoodEnergized, MoodHappy, MoodTired, MoodNeutral, MoodAchieved}

const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 300
)

// DateLayout is the canonical format for session dates in storage and display.
const DateLayout = "2006-01-02"

// PracticeSession is one logged dance practice session. The ID is assigned
// at creation and is the sole lookup key for update and delete; every read
// is filtered by UserID.
type PracticeSession struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Date            string    `json:"date" gorm:"not null"` // YYYY-MM-DD; legacy rows may hold other shapes
	DurationMinutes int       `json:"durationMinutes" gorm:"not null"`
	Intensity       string    `json:"intensity" gorm:"not null"`
	Mood            string    `json:"mood" gorm:"not null"`
	Calories        int       `json:"calories" gorm:"not null;default:0"`
	SongsNotes      string    `json:"songsNotes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ParsedDate returns the session date as a time.Time, or false when the
// stored string does not parse. Callers decide how to degrade: the dashboard
// drops the row from the trend chart, the manage table shows the raw string.
func (s *PracticeSession) ParsedDate() (time.Time, bool) {
	t, err := time.Parse(DateLayout, s.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DisplayLabel builds the selector label shown in the manage view:
// "<date> (<duration> min) - <first 8 chars of id>...". The truncation is
// display-only; selection always carries the full id.
func (s *PracticeSession) DisplayLabel() string {
	id := s.ID.String()
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s (%d min) - %s...", s.Date, s.DurationMinutes, id)
}

// ValidIntensity reports whether v is in the current allowed set.
func ValidIntensity(v string) bool {
	for _, i := range Intensities {
		if string(i) == v {
			return true
		}
	}
	return false
}

// ValidMood reports whether v is in the current allowed set.
func ValidMood(v string) bool {
	for _, m := range Moods {
		if string(m) == v {
			return true
		}
	}
	return false
}
