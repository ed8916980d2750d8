package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/api/middleware"
	"github.com/riya/garba-tracker-website/internal/domain"
	"github.com/riya/garba-tracker-website/internal/service"
	"github.com/riya/garba-tracker-website/internal/web"
)

// sessionForm carries form field values between render and submit so a
// failed submission re-renders with the user's input intact.
type sessionForm struct {
	Date            string
	DurationMinutes int
	Intensity       string
	Mood            string
	Calories        int
	SongsNotes      string
}

func (f sessionForm) toInput() service.SessionInput {
	return service.SessionInput{
		Date:            f.Date,
		DurationMinutes: f.DurationMinutes,
		Intensity:       f.Intensity,
		Mood:            f.Mood,
		Calories:        f.Calories,
		SongsNotes:      f.SongsNotes,
	}
}

func defaultSessionForm() sessionForm {
	return sessionForm{
		Date:            time.Now().Format(domain.DateLayout),
		DurationMinutes: 60,
		Intensity:       string(domain.IntensityLow),
		Mood:            string(domain.MoodEnergized),
		Calories:        300,
	}
}

type logPageData struct {
	User        *domain.User
	Active      string
	Form        sessionForm
	Intensities []domain.Intensity
	Moods       []domain.Mood
	Error       string
}

func newLogPageData(user *domain.User, form sessionForm, errMsg string) logPageData {
	return logPageData{
		User:        user,
		Active:      "log",
		Form:        form,
		Intensities: domain.Intensities,
		Moods:       domain.Moods,
		Error:       errMsg,
	}
}

type selectorOption struct {
	Value string
	Label string
}

type managePageData struct {
	User        *domain.User
	Active      string
	Sessions    []*domain.PracticeSession
	Options     []selectorOption
	SelectedID  string
	Selected    *domain.PracticeSession
	Form        sessionForm
	Intensities []domain.Intensity
	Moods       []domain.Mood
	Warning     string
	Error       string
}

type dashboardPageData struct {
	User      *domain.User
	Active    string
	Dashboard *service.Dashboard
}

type PagesHandler struct {
	trackerService   *service.TrackerService
	dashboardService *service.DashboardService
	renderer         *web.Renderer
}

func NewPagesHandler(trackerService *service.TrackerService, dashboardService *service.DashboardService, renderer *web.Renderer) *PagesHandler {
	return &PagesHandler{
		trackerService:   trackerService,
		dashboardService: dashboardService,
		renderer:         renderer,
	}
}

// LogPage renders the blank session form, date defaulted to today.
func (h *PagesHandler) LogPage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, "log", newLogPageData(user, defaultSessionForm(), "")); err != nil {
		log.Printf("ERROR [handlers.LogPage] failed to render: %v", err)
	}
}

// DashboardPage renders summary statistics and the two chart projections
// over the cached record list.
func (h *PagesHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sessions, err := h.trackerService.List(r.Context(), user.ID)
	if err != nil {
		log.Printf("ERROR [handlers.DashboardPage] failed to load sessions: %v", err)
		http.Error(w, "Failed to load session data", http.StatusInternalServerError)
		return
	}

	data := dashboardPageData{
		User:      user,
		Active:    "dashboard",
		Dashboard: h.dashboardService.Build(sessions),
	}
	if err := h.renderer.Render(w, "dashboard", data); err != nil {
		log.Printf("ERROR [handlers.DashboardPage] failed to render: %v", err)
	}
}

// ManagePage renders the record table and, when a row is selected, the
// pre-filled edit form and the delete button. The selector's option values
// carry the full session ID; the truncated label is display text only.
func (h *PagesHandler) ManagePage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sessions, err := h.trackerService.List(r.Context(), user.ID)
	if err != nil {
		log.Printf("ERROR [handlers.ManagePage] failed to load sessions: %v", err)
		http.Error(w, "Failed to load session data", http.StatusInternalServerError)
		return
	}

	data := managePageData{
		User:        user,
		Active:      "manage",
		Sessions:    sessions,
		Intensities: domain.Intensities,
		Moods:       domain.Moods,
		Error:       r.URL.Query().Get("err"),
	}
	for _, sess := range sessions {
		data.Options = append(data.Options, selectorOption{
			Value: sess.ID.String(),
			Label: sess.DisplayLabel(),
		})
	}

	if selected := r.URL.Query().Get("selected"); selected != "" {
		data.SelectedID = selected
		data.Selected, data.Warning = resolveSelection(sessions, selected)
		if data.Selected != nil {
			data.Form = prefillForm(data.Selected)
		}
	}

	if err := h.renderer.Render(w, "manage", data); err != nil {
		log.Printf("ERROR [handlers.ManagePage] failed to render: %v", err)
	}
}

// resolveSelection matches the submitted value against the user's own list
// by exact ID. A miss is a local warning, never a page failure.
func resolveSelection(sessions []*domain.PracticeSession, selected string) (*domain.PracticeSession, string) {
	id, err := uuid.Parse(selected)
	if err != nil {
		return nil, "Could not find the selected session data."
	}
	for _, sess := range sessions {
		if sess.ID == id {
			return sess, ""
		}
	}
	return nil, "Could not find the selected session data."
}

// prefillForm maps a stored record onto the edit form. Mood and intensity
// values outside the current allowed set fall back to Neutral and Medium.
func prefillForm(sess *domain.PracticeSession) sessionForm {
	form := sessionForm{
		Date:            sess.Date,
		DurationMinutes: sess.DurationMinutes,
		Intensity:       sess.Intensity,
		Mood:            sess.Mood,
		Calories:        sess.Calories,
		SongsNotes:      sess.SongsNotes,
	}
	if !domain.ValidMood(form.Mood) {
		form.Mood = string(domain.MoodNeutral)
	}
	if !domain.ValidIntensity(form.Intensity) {
		form.Intensity = string(domain.IntensityMedium)
	}
	return form
}
