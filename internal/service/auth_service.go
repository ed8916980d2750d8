package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/riya/garba-tracker-website/internal/config"
	"github.com/riya/garba-tracker-website/internal/domain"
	"github.com/riya/garba-tracker-website/internal/repository"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// AuthService wraps the OAuth2 authorization-code flow against the identity
// provider and owns the browser-session lifecycle. A misconfigured provider
// disables login with a diagnostic; it never takes the server down.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	oauth       *oauth2.Config
	configErr   error
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) *AuthService {
	s := &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}

	if err := cfg.ValidateOAuth(); err != nil {
		log.Printf("ERROR [service.NewAuthService] identity provider configuration invalid: %v", err)
		s.configErr = err
		return s
	}

	s.oauth = &oauth2.Config{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		RedirectURL:  cfg.OAuthRedirectURL,
		Scopes:       cfg.OAuthScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.OAuthAuthURL,
			TokenURL: cfg.OAuthTokenURL,
		},
	}
	return s
}

// Configured reports whether the identity provider configuration validated
// at startup. When false, LoginURL and HandleCallback short-circuit without
// contacting the provider.
func (s *AuthService) Configured() bool {
	return s.configErr == nil
}

// GenerateState returns a fresh random state value for CSRF protection.
func (s *AuthService) GenerateState() string {
	return uuid.New().String()
}

// LoginURL returns the provider's authorization URL carrying the state.
func (s *AuthService) LoginURL(state string) (string, error) {
	if s.configErr != nil {
		return "", domain.ErrAuthNotConfigured
	}
	return s.oauth.AuthCodeURL(state), nil
}

// HandleCallback exchanges the authorization code for a token, fetches the
// userinfo profile, upserts the user, and opens a browser session. Partial
// state is discarded on any failure so the caller stays unauthenticated.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*domain.User, *domain.UserSession, error) {
	if s.configErr != nil {
		return nil, nil, domain.ErrAuthNotConfigured
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("token exchange failed: %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.UpsertBySubject(ctx, &domain.User{
		ID:          uuid.New(),
		Subject:     profile.Subject,
		Email:       profile.Email,
		DisplayName: profile.Name,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize token: %w", err)
	}

	session := &domain.UserSession{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     tokenJSON,
		ExpiresAt: time.Now().Add(s.cfg.SessionDuration),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return user, session, nil
}

func (s *AuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*domain.Profile, error) {
	client := s.oauth.Client(ctx, token)
	resp, err := client.Get(s.cfg.OAuthUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned status %d", resp.StatusCode)
	}

	var profile domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, domain.ErrMalformedProfile
	}
	if profile.Subject == "" {
		return nil, domain.ErrMalformedProfile
	}
	return &profile, nil
}

// IssueCookieToken signs a JWT naming the session and its user. The cookie
// alone never authenticates a request; the middleware re-checks the session
// row so logout revokes it.
func (s *AuthService) IssueCookieToken(session *domain.UserSession) (string, error) {
	claims := jwt.MapClaims{
		"sub": session.UserID.String(),
		"sid": session.ID.String(),
		"exp": session.ExpiresAt.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SessionSecret))
}

// Authenticate resolves a cookie token to its user, verifying the JWT
// signature and the backing session row.
func (s *AuthService) Authenticate(ctx context.Context, cookieToken string) (*domain.User, error) {
	token, err := jwt.Parse(cookieToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrSessionExpired
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	sidStr, _ := claims["sid"].(string)
	sessionID, err := uuid.Parse(sidStr)
	if err != nil {
		return nil, domain.ErrSessionExpired
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return nil, domain.ErrSessionExpired
	}

	return s.userRepo.GetByID(ctx, session.UserID)
}

// Logout clears every browser session belonging to the user.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.sessionRepo.DeleteByUserID(ctx, userID)
}
