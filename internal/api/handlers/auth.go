package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/riya/garba-tracker-website/internal/api/middleware"
	"github.com/riya/garba-tracker-website/internal/domain"
	"github.com/riya/garba-tracker-website/internal/service"
	"github.com/riya/garba-tracker-website/internal/web"
)

const stateCookieName = "garba_oauth_state"

// Messages shown to the browser. Diagnostic detail stays in the server log.
const (
	flashAuthFailed       = "Login failed. Please try again."
	flashProfileMalformed = "The identity provider returned an incomplete profile. Please try again."
)

type AuthHandler struct {
	authService *service.AuthService
	renderer    *web.Renderer
}

func NewAuthHandler(authService *service.AuthService, renderer *web.Renderer) *AuthHandler {
	return &AuthHandler{authService: authService, renderer: renderer}
}

type loginPageData struct {
	User        *domain.User
	Active      string
	ConfigError bool
	Flash       string
}

// LoginPage renders the unauthenticated landing page. A valid session skips
// straight to the log view.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if _, err := h.authService.Authenticate(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, "/log", http.StatusSeeOther)
			return
		}
		middleware.ClearSessionCookie(w)
	}

	data := loginPageData{
		ConfigError: !h.authService.Configured(),
		Flash:       r.URL.Query().Get("flash"),
	}
	if err := h.renderer.Render(w, "login", data); err != nil {
		log.Printf("ERROR [handlers.LoginPage] failed to render: %v", err)
	}
}

// Login starts the authorization-code flow: set the CSRF state cookie and
// redirect to the provider.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := h.authService.GenerateState()
	loginURL, err := h.authService.LoginURL(state)
	if err != nil {
		log.Printf("ERROR [handlers.Login] cannot start login: %v", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

// Callback completes the flow. Every failure path lands the user back on the
// login page with a recoverable message and no session state left behind.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		log.Printf("ERROR [handlers.Callback] state mismatch: %v", domain.ErrInvalidState)
		h.failLogin(w, r, flashAuthFailed)
		return
	}
	clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Printf("ERROR [handlers.Callback] authorization failed: %s - %s",
			r.URL.Query().Get("error"), r.URL.Query().Get("error_description"))
		h.failLogin(w, r, flashAuthFailed)
		return
	}

	user, session, err := h.authService.HandleCallback(r.Context(), code)
	if err != nil {
		log.Printf("ERROR [handlers.Callback] callback failed: %v", err)
		if errors.Is(err, domain.ErrMalformedProfile) {
			h.failLogin(w, r, flashProfileMalformed)
			return
		}
		h.failLogin(w, r, flashAuthFailed)
		return
	}

	cookieToken, err := h.authService.IssueCookieToken(session)
	if err != nil {
		log.Printf("ERROR [handlers.Callback] failed to issue session cookie: %v", err)
		_ = h.authService.Logout(r.Context(), user.ID)
		h.failLogin(w, r, flashAuthFailed)
		return
	}

	middleware.SetSessionCookie(w, cookieToken, int(session.ExpiresAt.Sub(session.CreatedAt).Seconds()))
	http.Redirect(w, r, "/log", http.StatusSeeOther)
}

// Logout clears the browser session and its server-side rows.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if ok {
		if err := h.authService.Logout(r.Context(), user.ID); err != nil {
			log.Printf("ERROR [handlers.Logout] failed to delete sessions: %v", err)
		}
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) failLogin(w http.ResponseWriter, r *http.Request, flash string) {
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/?flash="+url.QueryEscape(flash), http.StatusSeeOther)
}

func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
