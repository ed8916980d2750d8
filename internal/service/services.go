package service

import (
	"github.com/riya/garba-tracker-website/internal/cache"
	"github.com/riya/garba-tracker-website/internal/config"
	"github.com/riya/garba-tracker-website/internal/repository"
)

type Services struct {
	Auth      *AuthService
	Tracker   *TrackerService
	Dashboard *DashboardService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	listCache := cache.NewListCache(cfg.CacheTTL)

	return &Services{
		Auth:      NewAuthService(repos.User, repos.Session, cfg),
		Tracker:   NewTrackerService(repos.PracticeSession, listCache),
		Dashboard: NewDashboardService(),
	}
}
