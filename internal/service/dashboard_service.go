package service

import (
	"math"
	"sort"

	"github.com/riya/garba-tracker-website/internal/domain"
)

// moodOrdinals is the five-point encoding used only for the trend chart,
// never persisted. Moods outside the current set plot at the 2.5 midpoint.
var moodOrdinals = map[string]float64{
	string(domain.MoodTired):     1,
	string(domain.MoodNeutral):   2,
	string(domain.MoodAchieved):  3,
	string(domain.MoodHappy):     4,
	string(domain.MoodEnergized): 5,
}

const unknownMoodOrdinal = 2.5

// MoodOrdinal maps a mood value onto the chart scale.
func MoodOrdinal(mood string) float64 {
	if v, ok := moodOrdinals[mood]; ok {
		return v
	}
	return unknownMoodOrdinal
}

// MoodTick is one labeled position on the trend chart's y-axis.
type MoodTick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// MoodTicks returns the five fixed y-axis positions, low to high.
func MoodTicks() []MoodTick {
	return []MoodTick{
		{1, string(domain.MoodTired)},
		{2, string(domain.MoodNeutral)},
		{3, string(domain.MoodAchieved)},
		{4, string(domain.MoodHappy)},
		{5, string(domain.MoodEnergized)},
	}
}

// TrendPoint is one dated mood observation.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// IntensitySlice is one wedge of the intensity distribution chart.
type IntensitySlice struct {
	Intensity string `json:"intensity"`
	Count     int    `json:"count"`
}

// Summary holds the dashboard's headline statistics.
type Summary struct {
	TotalSessions int     `json:"totalSessions"`
	TotalHours    float64 `json:"totalHours"`    // 1 decimal
	AvgDuration   float64 `json:"avgDuration"`   // 1 decimal
	TotalCalories int     `json:"totalCalories"`
}

// Dashboard is everything the dashboard view renders.
type Dashboard struct {
	Summary   Summary          `json:"summary"`
	MoodTrend []TrendPoint     `json:"moodTrend"`
	MoodTicks []MoodTick       `json:"moodTicks"`
	Intensity []IntensitySlice `json:"intensity"`
}

// HasMoodTrend reports whether at least one record had a parseable date.
func (d *Dashboard) HasMoodTrend() bool {
	return len(d.MoodTrend) > 0
}

// HasIntensity reports whether the distribution chart has anything to show.
func (d *Dashboard) HasIntensity() bool {
	return len(d.Intensity) > 0
}

// DashboardService computes aggregate statistics and the two chart
// projections over an already-loaded record list.
type DashboardService struct{}

func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// Build returns nil for an empty list; the view shows a first-session
// prompt instead of charts.
func (s *DashboardService) Build(sessions []*domain.PracticeSession) *Dashboard {
	if len(sessions) == 0 {
		return nil
	}

	var totalMinutes, totalCalories int
	for _, sess := range sessions {
		totalMinutes += sess.DurationMinutes
		totalCalories += sess.Calories
	}

	d := &Dashboard{
		Summary: Summary{
			TotalSessions: len(sessions),
			TotalHours:    round1(float64(totalMinutes) / 60),
			AvgDuration:   round1(float64(totalMinutes) / float64(len(sessions))),
			TotalCalories: totalCalories,
		},
		MoodTicks: MoodTicks(),
		MoodTrend: s.moodTrend(sessions),
		Intensity: s.intensityDistribution(sessions),
	}
	return d
}

// moodTrend drops records whose dates do not parse and orders the rest
// chronologically.
func (s *DashboardService) moodTrend(sessions []*domain.PracticeSession) []TrendPoint {
	type dated struct {
		at    int64
		point TrendPoint
	}
	var points []dated
	for _, sess := range sessions {
		t, ok := sess.ParsedDate()
		if !ok {
			continue
		}
		points = append(points, dated{
			at:    t.Unix(),
			point: TrendPoint{Date: sess.Date, Value: MoodOrdinal(sess.Mood)},
		})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].at < points[j].at })

	trend := make([]TrendPoint, len(points))
	for i, p := range points {
		trend[i] = p.point
	}
	return trend
}

// intensityDistribution counts records per intensity value, largest wedge
// first, name as tiebreak for stable output.
func (s *DashboardService) intensityDistribution(sessions []*domain.PracticeSession) []IntensitySlice {
	counts := make(map[string]int)
	for _, sess := range sessions {
		if sess.Intensity == "" {
			continue
		}
		counts[sess.Intensity]++
	}

	slices := make([]IntensitySlice, 0, len(counts))
	for intensity, count := range counts {
		slices = append(slices, IntensitySlice{Intensity: intensity, Count: count})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].Intensity < slices[j].Intensity
	})
	return slices
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
