package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"littlewins/internal/models"
)

type ActivitySQLite struct {
	db *sql.DB
}

func NewActivitySQLite(db *sql.DB) *ActivitySQLite {
	return &ActivitySQLite{db: db}
}

var _ ActivityRepo = (*ActivitySQLite)(nil)

const (
	activityColumns = `id, mode, title, description, duration_hints, activity_type, payload`

	selectActivitiesByModeSQL = `SELECT ` + activityColumns + ` FROM activities WHERE mode = ? ORDER BY id`
	selectAllActivitiesSQL    = `SELECT ` + activityColumns + ` FROM activities ORDER BY mode, id`
	selectModesSQL            = `SELECT DISTINCT mode FROM activities ORDER BY mode`

	upsertActivitySQL = `
		INSERT INTO activities (id, mode, title, description, duration_hints, activity_type, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode=excluded.mode,
			title=excluded.title,
			description=excluded.description,
			duration_hints=excluded.duration_hints,
			activity_type=excluded.activity_type,
			payload=excluded.payload
	`
)

// encodeHints renders hints as "3,5,10"; no hints is the empty string.
func encodeHints(hints []int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, ",")
}

// decodeHints parses "3,5,10". Tokens that are not positive integers are skipped.
func decodeHints(s string) []int {
	var out []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			out = append(out, n)
		}
	}
	return out
}

// FindByMode returns every activity whose mode matches exactly, ordered by id.
func (r *ActivitySQLite) FindByMode(ctx context.Context, mode string) ([]models.Activity, error) {
	acts, err := r.query(ctx, selectActivitiesByModeSQL, mode)
	if err != nil {
		return nil, fmt.Errorf("select activities for mode %q: %w", mode, err)
	}
	return acts, nil
}

// List returns the whole catalog.
func (r *ActivitySQLite) List(ctx context.Context) ([]models.Activity, error) {
	acts, err := r.query(ctx, selectAllActivitiesSQL)
	if err != nil {
		return nil, fmt.Errorf("select activities: %w", err)
	}
	return acts, nil
}

func (r *ActivitySQLite) query(ctx context.Context, q string, args ...any) ([]models.Activity, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Activity, 0, 16)
	for rows.Next() {
		var (
			a       models.Activity
			hints   string
			payload sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Mode, &a.Title, &a.Description, &hints, &a.Type, &payload); err != nil {
			return nil, err
		}
		a.DurationHints = decodeHints(hints)
		a.RawPayload = payload.String
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListModes returns the distinct modes in the catalog, sorted.
func (r *ActivitySQLite) ListModes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectModesSQL)
	if err != nil {
		return nil, fmt.Errorf("select modes: %w", err)
	}
	defer rows.Close()

	var modes []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan mode: %w", err)
		}
		modes = append(modes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate modes: %w", err)
	}
	return modes, nil
}

// Upsert inserts or updates acts in a single transaction.
func (r *ActivitySQLite) Upsert(ctx context.Context, acts []models.Activity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertActivitySQL)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, a := range acts {
		var payload *string
		if a.RawPayload != "" {
			p := a.RawPayload
			payload = &p
		}
		typ := a.Type
		if typ == "" {
			typ = "generic"
		}
		if _, err := stmt.ExecContext(ctx, a.ID, a.Mode, a.Title, a.Description, encodeHints(a.DurationHints), typ, payload); err != nil {
			return fmt.Errorf("upsert activity %q: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}
