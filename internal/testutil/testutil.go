package testutil

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riya/garba-tracker-website/internal/api"
	"github.com/riya/garba-tracker-website/internal/config"
	"github.com/riya/garba-tracker-website/internal/domain"
	"github.com/riya/garba-tracker-website/internal/repository"
	repoPostgres "github.com/riya/garba-tracker-website/internal/repository/postgres"
	"github.com/riya/garba-tracker-website/internal/service"
	"github.com/riya/garba-tracker-website/internal/web"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_garba_tracker"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.PracticeSession{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{"practice_sessions", "user_sessions", "users"}
	for _, table := range tables {
		if err := tdb.DB.Exec("TRUNCATE TABLE " + table + " CASCADE").Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a config suitable for tests. Overrides let individual
// tests point the OAuth endpoints at a stub provider or break the config on
// purpose.
func TestConfig(overrides ...func(*config.Config)) *config.Config {
	cfg := &config.Config{
		Port:              "0",
		Environment:       "test",
		SessionSecret:     "test-session-secret",
		SessionDuration:   24 * time.Hour,
		OAuthClientID:     "test-client-id",
		OAuthClientSecret: "test-client-secret",
		OAuthRedirectURL:  "http://localhost/auth/callback",
		OAuthScopes:       []string{"openid", "email", "profile"},
		OAuthAuthURL:      "http://localhost/provider/auth",
		OAuthTokenURL:     "http://localhost/provider/token",
		OAuthUserInfoURL:  "http://localhost/provider/userinfo",
		CacheTTL:          5 * time.Minute,
	}
	for _, override := range overrides {
		override(cfg)
	}
	return cfg
}

// TestServer wires the real router over a testcontainers database.
type TestServer struct {
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Server   *httptest.Server
	// Client carries cookies between requests and does not follow
	// redirects, so tests can assert on Location headers.
	Client *http.Client
}

// NewTestServer starts the full application against a fresh database.
func NewTestServer(t *testing.T, overrides ...func(*config.Config)) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	cfg := TestConfig(overrides...)
	services := service.NewServices(repos, cfg)

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}

	server := httptest.NewServer(api.NewRouter(services, renderer))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to build cookie jar: %v", err)
	}

	return &TestServer{
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Server:   server,
		Client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// URL joins a path onto the test server's base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
