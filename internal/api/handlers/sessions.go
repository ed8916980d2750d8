package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/api/middleware"
	"github.com/riya/garba-tracker-website/internal/domain"
	"github.com/riya/garba-tracker-website/internal/service"
	"github.com/riya/garba-tracker-website/internal/web"
)

type SessionsHandler struct {
	trackerService *service.TrackerService
	renderer       *web.Renderer
}

func NewSessionsHandler(trackerService *service.TrackerService, renderer *web.Renderer) *SessionsHandler {
	return &SessionsHandler{trackerService: trackerService, renderer: renderer}
}

// Create handles the log form. A failed create re-renders the form with the
// submitted values and the error inline; the list cache is untouched so a
// retry sees the same state. Success redirects so the form comes back clean.
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := parseSessionForm(r)
	if _, err := h.trackerService.Create(r.Context(), user.ID, form.toInput()); err != nil {
		status, msg := mutationError("Create", err)
		w.WriteHeader(status)
		if renderErr := h.renderer.Render(w, "log", newLogPageData(user, form, msg)); renderErr != nil {
			log.Printf("ERROR [handlers.Create] failed to render: %v", renderErr)
		}
		return
	}

	http.Redirect(w, r, "/log", http.StatusSeeOther)
}

// Update rewrites the non-key fields of the selected record.
func (h *SessionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, manageURL("", "Could not find the selected session data."), http.StatusSeeOther)
		return
	}

	form := parseSessionForm(r)
	if err := h.trackerService.Update(r.Context(), user.ID, sessionID, form.toInput()); err != nil {
		_, msg := mutationError("Update", err)
		http.Redirect(w, r, manageURL(sessionID.String(), msg), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/manage", http.StatusSeeOther)
}

// Delete removes the selected record. No confirmation step; the button
// itself warns that the action cannot be undone.
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, manageURL("", "Could not find the selected session data."), http.StatusSeeOther)
		return
	}

	if err := h.trackerService.Delete(r.Context(), user.ID, sessionID); err != nil {
		_, msg := mutationError("Delete", err)
		http.Redirect(w, r, manageURL(sessionID.String(), msg), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/manage", http.StatusSeeOther)
}

func parseSessionForm(r *http.Request) sessionForm {
	_ = r.ParseForm()
	duration, _ := strconv.Atoi(r.PostFormValue("duration"))
	calories, _ := strconv.Atoi(r.PostFormValue("calories"))
	return sessionForm{
		Date:            r.PostFormValue("date"),
		DurationMinutes: duration,
		Intensity:       r.PostFormValue("intensity"),
		Mood:            r.PostFormValue("mood"),
		Calories:        calories,
		SongsNotes:      r.PostFormValue("songs_notes"),
	}
}

// mutationError maps a service error to a status and user-facing message.
// Validation sentinels are already phrased for the user; anything else is
// logged in full and replaced with a generic retry message.
func mutationError(op string, err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrInvalidIntensity),
		errors.Is(err, domain.ErrInvalidMood),
		errors.Is(err, domain.ErrInvalidCalories):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrNotSessionOwner):
		return http.StatusNotFound, "Could not find the selected session data."
	default:
		log.Printf("ERROR [handlers.%s] repository operation failed: %v", op, err)
		return http.StatusInternalServerError, "Failed to save the session. Please try again."
	}
}

func manageURL(selected, errMsg string) string {
	q := url.Values{}
	if selected != "" {
		q.Set("selected", selected)
	}
	if errMsg != "" {
		q.Set("err", errMsg)
	}
	if encoded := q.Encode(); encoded != "" {
		return "/manage?" + encoded
	}
	return "/manage"
}
