package testutil

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/api/middleware"
	"github.com/riya/garba-tracker-website/internal/domain"
	"gorm.io/datatypes"
)

// LoginAs opens a browser session for user directly through the service
// layer and plants the session cookie in the test client's jar, skipping
// the provider round trip.
func (ts *TestServer) LoginAs(t *testing.T, user *domain.User) *domain.UserSession {
	t.Helper()

	session := &domain.UserSession{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     datatypes.JSON([]byte(`{"access_token":"test-token","token_type":"Bearer"}`)),
		ExpiresAt: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	if err := ts.Repos.Session.Create(context.Background(), session); err != nil {
		t.Fatalf("failed to create browser session: %v", err)
	}

	token, err := ts.Services.Auth.IssueCookieToken(session)
	if err != nil {
		t.Fatalf("failed to issue cookie token: %v", err)
	}

	serverURL, err := url.Parse(ts.Server.URL)
	if err != nil {
		t.Fatalf("failed to parse server URL: %v", err)
	}
	ts.Client.Jar.SetCookies(serverURL, []*http.Cookie{{
		Name:  middleware.SessionCookieName,
		Value: token,
		Path:  "/",
	}})

	return session
}
