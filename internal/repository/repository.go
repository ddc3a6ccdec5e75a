package repository

import (
	"context"
	"database/sql"
	"time"

	"littlewins/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, email, username, hash string) (int, error)
	GetByIdentity(ctx context.Context, email, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetLastSelection(ctx context.Context, userID int) (models.LastSelection, error)
	SaveLastSelection(ctx context.Context, userID int, sel models.LastSelection) error
}

type ActivityRepo interface {
	FindByMode(ctx context.Context, mode string) ([]models.Activity, error)
	List(ctx context.Context) ([]models.Activity, error)
	ListModes(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, acts []models.Activity) error
}

// SessionQuery narrows a user's session history. Zero values mean "no bound".
type SessionQuery struct {
	From time.Time
	To   time.Time
	Mode string
}

type SessionRepo interface {
	Create(ctx context.Context, s models.Session) (int, error)
	Get(ctx context.Context, userID, id int) (*models.Session, error)
	List(ctx context.Context, userID int, q SessionQuery) ([]models.Session, error)
	AttachPhoto(ctx context.Context, userID, id int, photo string) (bool, error)
	DailyCounts(ctx context.Context, userID int) ([]models.DayCount, error)
}

type Repository struct {
	Auth       Authorization
	Activities ActivityRepo
	Sessions   SessionRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:       NewUserRepository(db),
		Activities: NewActivitySQLite(db),
		Sessions:   NewSessionSQLite(db),
	}
}

// Timestamps are stored as RFC3339 UTC text; CURRENT_TIMESTAMP defaults use the SQLite layout.
const sqliteTimestampLayout = "2006-01-02 15:04:05"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range []string{time.RFC3339Nano, sqliteTimestampLayout} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
