package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/riya/garba-tracker-website/internal/domain"
	"github.com/riya/garba-tracker-website/internal/service"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

// SessionCookieName is the browser cookie holding the signed session token.
const SessionCookieName = "garba_session"

// Auth resolves the session cookie to a user before any view runs. Requests
// without a live session are bounced to the login page rather than erroring;
// an invalid cookie is cleared on the way out.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			user, err := authService.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionExpired) {
					log.Printf("ERROR [middleware.Auth] failed to authenticate session: %v", err)
				}
				ClearSessionCookie(w)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}

// SetSessionCookie installs the signed session token for the browser.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
