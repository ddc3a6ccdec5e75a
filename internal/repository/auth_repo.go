package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"littlewins/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (email, username, password_hash) VALUES (?, ?, ?)`
	selectUserByIdentitySQL = `SELECT id, email, username, password_hash, created_at FROM users WHERE email = ? OR username = ? LIMIT 1`
	selectUserByIDSQL       = `SELECT id, email, username, password_hash, created_at FROM users WHERE id = ?`
	selectLastSelectionSQL  = `SELECT last_activity_id, last_mode, last_duration FROM users WHERE id = ?`
	updateLastSelectionSQL  = `UPDATE users SET last_activity_id = ?, last_mode = ?, last_duration = ? WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, email, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, email, username, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByIdentity fetches the user whose email or username matches. Returns (nil, nil) if not found.
func (r *UserRepository) GetByIdentity(ctx context.Context, email, username string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByIdentitySQL, email, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		createdAt sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if createdAt.Valid {
		if ts, err := parseTimestamp(createdAt.String); err == nil {
			u.CreatedAt = ts
		}
	}
	return &u, nil
}

// GetLastSelection returns the user's last shown activity; zero value if none or no such user.
func (r *UserRepository) GetLastSelection(ctx context.Context, userID int) (models.LastSelection, error) {
	var (
		id       sql.NullString
		mode     sql.NullString
		duration sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, selectLastSelectionSQL, userID).Scan(&id, &mode, &duration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LastSelection{}, nil
		}
		return models.LastSelection{}, fmt.Errorf("select last selection for user %d: %w", userID, err)
	}
	return models.LastSelection{
		ActivityID: id.String,
		Mode:       mode.String,
		Duration:   int(duration.Int64),
	}, nil
}

// SaveLastSelection overwrites the user's last shown activity.
func (r *UserRepository) SaveLastSelection(ctx context.Context, userID int, sel models.LastSelection) error {
	_, err := r.db.ExecContext(ctx, updateLastSelectionSQL, sel.ActivityID, sel.Mode, sel.Duration, userID)
	if err != nil {
		return fmt.Errorf("update last selection for user %d: %w", userID, err)
	}
	return nil
}
