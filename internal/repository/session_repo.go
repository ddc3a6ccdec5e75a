package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"littlewins/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite { return &SessionSQLite{db: db} }

var _ SessionRepo = (*SessionSQLite)(nil)

const (
	insertSessionSQL = `
		INSERT INTO sessions (user_id, mode, duration, activity_id, activity_title, started_at, completed_at, photo, sensor_result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectSessionSQL = `
		SELECT id, user_id, mode, duration, activity_id, activity_title, started_at, completed_at, photo, sensor_result
		FROM sessions WHERE user_id = ? AND id = ?
	`
	// photos are large; lists only report whether one exists
	selectSessionListSQL = `
		SELECT id, user_id, mode, duration, activity_id, activity_title, started_at, completed_at, photo IS NOT NULL, sensor_result
		FROM sessions`
	updateSessionPhotoSQL = `UPDATE sessions SET photo = ? WHERE user_id = ? AND id = ?`
	selectDailyCountsSQL  = `
		SELECT substr(completed_at, 1, 10) AS day, COUNT(*) AS count
		FROM sessions
		WHERE user_id = ?
		GROUP BY day
		ORDER BY day DESC
	`
)

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create inserts a completed session and returns its ID.
func (r *SessionSQLite) Create(ctx context.Context, s models.Session) (int, error) {
	var startedAt *string
	if s.StartedAt != nil {
		v := formatTimestamp(*s.StartedAt)
		startedAt = &v
	}
	completedAt := s.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx, insertSessionSQL,
		s.UserID,
		s.Mode,
		s.Duration,
		s.ActivityID,
		s.ActivityTitle,
		startedAt,
		formatTimestamp(completedAt),
		nullIfEmpty(s.Photo),
		nullIfEmpty(s.SensorResult),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session for user %d: %w", s.UserID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for session: %w", err)
	}
	return int(id), nil
}

// Get returns one of the user's sessions including its photo. Returns (nil, nil) if not found.
func (r *SessionSQLite) Get(ctx context.Context, userID, id int) (*models.Session, error) {
	var (
		s           models.Session
		startedAt   sql.NullString
		completedAt string
		photo       sql.NullString
		sensor      sql.NullString
	)
	err := r.db.QueryRowContext(ctx, selectSessionSQL, userID, id).Scan(
		&s.ID, &s.UserID, &s.Mode, &s.Duration, &s.ActivityID, &s.ActivityTitle,
		&startedAt, &completedAt, &photo, &sensor,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session %d: %w", id, err)
	}
	if err := fillTimes(&s, startedAt, completedAt); err != nil {
		return nil, fmt.Errorf("session %d: %w", id, err)
	}
	s.Photo = photo.String
	s.HasPhoto = photo.Valid
	s.SensorResult = sensor.String
	return &s, nil
}

// List returns the user's sessions filtered by [From, To] (inclusive) and mode, ordered ASC.
func (r *SessionSQLite) List(ctx context.Context, userID int, q SessionQuery) ([]models.Session, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if !q.From.IsZero() {
		conds = append(conds, "completed_at >= ?")
		args = append(args, formatTimestamp(q.From))
	}
	if !q.To.IsZero() {
		conds = append(conds, "completed_at <= ?")
		args = append(args, formatTimestamp(q.To))
	}
	if mode := strings.TrimSpace(q.Mode); mode != "" {
		conds = append(conds, "mode = ?")
		args = append(args, mode)
	}

	query := selectSessionListSQL + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY completed_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select sessions for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Session, 0, 32)
	for rows.Next() {
		var (
			s           models.Session
			startedAt   sql.NullString
			completedAt string
			sensor      sql.NullString
		)
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Mode, &s.Duration, &s.ActivityID, &s.ActivityTitle,
			&startedAt, &completedAt, &s.HasPhoto, &sensor,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if err := fillTimes(&s, startedAt, completedAt); err != nil {
			return nil, fmt.Errorf("session %d: %w", s.ID, err)
		}
		s.SensorResult = sensor.String
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func fillTimes(s *models.Session, startedAt sql.NullString, completedAt string) error {
	ts, err := parseTimestamp(completedAt)
	if err != nil {
		return fmt.Errorf("parse completed_at %q: %w", completedAt, err)
	}
	s.CompletedAt = ts
	if startedAt.Valid && startedAt.String != "" {
		st, err := parseTimestamp(startedAt.String)
		if err != nil {
			return fmt.Errorf("parse started_at %q: %w", startedAt.String, err)
		}
		s.StartedAt = &st
	}
	return nil
}

// AttachPhoto sets the photo on one of the user's sessions. It reports false if no such session exists.
func (r *SessionSQLite) AttachPhoto(ctx context.Context, userID, id int, photo string) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateSessionPhotoSQL, photo, userID, id)
	if err != nil {
		return false, fmt.Errorf("update photo for session %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for session %d: %w", id, err)
	}
	return n > 0, nil
}

// DailyCounts returns the number of sessions per calendar day (UTC), newest first.
func (r *SessionSQLite) DailyCounts(ctx context.Context, userID int) ([]models.DayCount, error) {
	rows, err := r.db.QueryContext(ctx, selectDailyCountsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select daily counts for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.DayCount, 0, 32)
	for rows.Next() {
		var d models.DayCount
		if err := rows.Scan(&d.Key, &d.Count); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily counts: %w", err)
	}
	return out, nil
}
