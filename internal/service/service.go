package service

import (
	"context"
	"time"

	"littlewins/internal/models"
	"littlewins/internal/repository"
	"littlewins/internal/selector"
)

type Authorization interface {
	Register(ctx context.Context, email, username, password string) (string, models.User, error)
	Login(ctx context.Context, identity, password string) (string, models.User, error)
	Me(ctx context.Context, userID int) (models.User, error)
	ParseToken(accessToken string) (int, error)
}

// Activities picks activities and exposes the catalog.
type Activities interface {
	Next(ctx context.Context, userID int, p NextParams) (models.Activity, error)
	Catalog(ctx context.Context) ([]models.Activity, error)
	Modes(ctx context.Context) ([]string, error)
}

// Sessions records completed sessions.
type Sessions interface {
	Record(ctx context.Context, userID int, p SessionParams) (models.Session, error)
	Get(ctx context.Context, userID, id int) (models.Session, error)
	AttachPhoto(ctx context.Context, userID, id int, photo string) (models.Session, error)
}

// History exposes a user's session log with filtering access.
type History interface {
	List(ctx context.Context, userID int, f SessionFilter) ([]models.Session, error)
}

// Stats exposes read-only aggregates over a user's sessions.
type Stats interface {
	Summary(ctx context.Context, userID int, now time.Time) (models.Stats, error)
	DailyCounts(ctx context.Context, userID int) ([]models.DayCount, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Activities
	Sessions
	History
	Stats
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth AuthConfig, opts ...selector.Option) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, auth),
		Activities:    NewActivityService(repos.Activities, repos.Auth, opts...),
		Sessions:      NewSessionService(repos.Sessions, repos.Activities),
		History:       NewHistoryService(repos.Sessions),
		Stats:         NewStatsService(repos.Activities, repos.Sessions),
	}
}
