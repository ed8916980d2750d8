package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/domain"
	"github.com/riya/garba-tracker-website/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodOrdinal(t *testing.T) {
	tests := []struct {
		mood string
		want float64
	}{
		{"Tired", 1},
		{"Neutral", 2},
		{"Achieved", 3},
		{"Happy", 4},
		{"Energized", 5},
		{"Exhausted", 2.5}, // legacy value outside the current set
		{"", 2.5},
		{"happy", 2.5}, // mapping is case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.mood, func(t *testing.T) {
			assert.Equal(t, tt.want, service.MoodOrdinal(tt.mood))
		})
	}
}

func session(date, mood, intensity string, duration, calories int) *domain.PracticeSession {
	return &domain.PracticeSession{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Date:            date,
		Mood:            mood,
		Intensity:       intensity,
		DurationMinutes: duration,
		Calories:        calories,
	}
}

func TestDashboardService_Build_Empty(t *testing.T) {
	svc := service.NewDashboardService()
	assert.Nil(t, svc.Build(nil))
	assert.Nil(t, svc.Build([]*domain.PracticeSession{}))
}

func TestDashboardService_Build_Summary(t *testing.T) {
	svc := service.NewDashboardService()

	d := svc.Build([]*domain.PracticeSession{
		session("2024-01-01", "Happy", "Medium", 60, 300),
		session("2024-01-02", "Tired", "High", 45, 250),
		session("2024-01-03", "Energized", "Low", 30, 150),
	})
	require.NotNil(t, d)

	assert.Equal(t, 3, d.Summary.TotalSessions)
	assert.Equal(t, 2.3, d.Summary.TotalHours)  // 135/60 rounded to 1 decimal
	assert.Equal(t, 45.0, d.Summary.AvgDuration)
	assert.Equal(t, 700, d.Summary.TotalCalories)
}

func TestDashboardService_MoodTrend(t *testing.T) {
	svc := service.NewDashboardService()

	t.Run("sorted by date with ordinal values", func(t *testing.T) {
		d := svc.Build([]*domain.PracticeSession{
			session("2024-02-10", "Energized", "High", 60, 300),
			session("2024-01-05", "Tired", "Low", 30, 100),
		})
		require.NotNil(t, d)
		require.Len(t, d.MoodTrend, 2)
		assert.Equal(t, "2024-01-05", d.MoodTrend[0].Date)
		assert.Equal(t, 1.0, d.MoodTrend[0].Value)
		assert.Equal(t, "2024-02-10", d.MoodTrend[1].Date)
		assert.Equal(t, 5.0, d.MoodTrend[1].Value)
		assert.True(t, d.HasMoodTrend())
	})

	t.Run("unparseable dates are dropped", func(t *testing.T) {
		d := svc.Build([]*domain.PracticeSession{
			session("not-a-date", "Happy", "Medium", 60, 300),
			session("2024-01-01", "Neutral", "Medium", 60, 300),
		})
		require.NotNil(t, d)
		require.Len(t, d.MoodTrend, 1)
		assert.Equal(t, 2.0, d.MoodTrend[0].Value)
	})

	t.Run("no valid dates leaves the chart empty", func(t *testing.T) {
		d := svc.Build([]*domain.PracticeSession{
			session("bad", "Happy", "Medium", 60, 300),
		})
		require.NotNil(t, d)
		assert.False(t, d.HasMoodTrend())
		// Summary still computes; only the trend degrades
		assert.Equal(t, 1, d.Summary.TotalSessions)
	})

	t.Run("legacy mood plots at the midpoint", func(t *testing.T) {
		d := svc.Build([]*domain.PracticeSession{
			session("2024-01-01", "Exhausted", "Medium", 60, 300),
		})
		require.NotNil(t, d)
		require.Len(t, d.MoodTrend, 1)
		assert.Equal(t, 2.5, d.MoodTrend[0].Value)
	})
}

func TestDashboardService_MoodTicks(t *testing.T) {
	ticks := service.MoodTicks()
	require.Len(t, ticks, 5)
	assert.Equal(t, service.MoodTick{Value: 1, Label: "Tired"}, ticks[0])
	assert.Equal(t, service.MoodTick{Value: 2, Label: "Neutral"}, ticks[1])
	assert.Equal(t, service.MoodTick{Value: 3, Label: "Achieved"}, ticks[2])
	assert.Equal(t, service.MoodTick{Value: 4, Label: "Happy"}, ticks[3])
	assert.Equal(t, service.MoodTick{Value: 5, Label: "Energized"}, ticks[4])
}

func TestDashboardService_IntensityDistribution(t *testing.T) {
	svc := service.NewDashboardService()

	d := svc.Build([]*domain.PracticeSession{
		session("2024-01-01", "Happy", "Medium", 60, 300),
		session("2024-01-02", "Happy", "Medium", 60, 300),
		session("2024-01-03", "Happy", "High", 60, 300),
		session("2024-01-04", "Happy", "", 60, 300), // missing intensity is skipped
	})
	require.NotNil(t, d)

	require.Len(t, d.Intensity, 2)
	assert.Equal(t, service.IntensitySlice{Intensity: "Medium", Count: 2}, d.Intensity[0])
	assert.Equal(t, service.IntensitySlice{Intensity: "High", Count: 1}, d.Intensity[1])
	assert.True(t, d.HasIntensity())
}

func TestDashboardService_TiredAndEnergizedScenario(t *testing.T) {
	svc := service.NewDashboardService()
	userID := uuid.New()

	tired := session("2024-01-01", "Tired", "Low", 30, 100)
	tired.UserID = userID
	energized := session("2024-01-02", "Energized", "High", 90, 500)
	energized.UserID = userID

	d := svc.Build([]*domain.PracticeSession{tired, energized})
	require.NotNil(t, d)

	assert.Equal(t, 60.0, d.Summary.AvgDuration)
	require.Len(t, d.MoodTrend, 2)
	assert.Equal(t, 1.0, d.MoodTrend[0].Value)
	assert.Equal(t, 5.0, d.MoodTrend[1].Value)
}
