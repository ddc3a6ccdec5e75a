package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"littlewins/internal/models"
	"littlewins/internal/observability"
	"littlewins/internal/repository"
)

// AllowedDurations are the session lengths, in minutes, a user can pick.
var AllowedDurations = []int{3, 5, 10, 15}

const (
	photoPrefix   = "data:image/"
	maxPhotoBytes = 5 << 20 // 5 MiB
)

var (
	// ErrInvalidSession wraps every validation failure of SessionParams.
	ErrInvalidSession  = errors.New("invalid session")
	ErrSessionNotFound = errors.New("session not found")
)

type SessionService struct {
	sessionRepo  repository.SessionRepo
	activityRepo repository.ActivityRepo
}

func NewSessionService(sessionRepo repository.SessionRepo, activityRepo repository.ActivityRepo) *SessionService {
	return &SessionService{sessionRepo: sessionRepo, activityRepo: activityRepo}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSession, fmt.Sprintf(format, args...))
}

func isAllowedDuration(d int) bool {
	for _, a := range AllowedDurations {
		if a == d {
			return true
		}
	}
	return false
}

func validatePhoto(photo string) error {
	if !strings.HasPrefix(photo, photoPrefix) {
		return invalid("photo must be a data:image URL")
	}
	if len(photo) > maxPhotoBytes {
		return invalid("photo exceeds %d bytes", maxPhotoBytes)
	}
	return nil
}

func validateSession(p SessionParams) error {
	if strings.TrimSpace(p.Mode) == "" || strings.TrimSpace(p.ActivityID) == "" ||
		strings.TrimSpace(p.ActivityTitle) == "" || p.CompletedAt.IsZero() {
		return invalid("missing required session fields")
	}
	if !isAllowedDuration(p.Duration) {
		return invalid("duration %d is not one of %v", p.Duration, AllowedDurations)
	}
	if p.StartedAt != nil && p.StartedAt.After(p.CompletedAt) {
		return invalid("started_at is after completed_at")
	}
	if p.Photo != "" {
		return validatePhoto(p.Photo)
	}
	return nil
}

// Record validates and stores a completed session for userID.
func (s *SessionService) Record(ctx context.Context, userID int, p SessionParams) (models.Session, error) {
	if err := validateSession(p); err != nil {
		return models.Session{}, err
	}

	sess := models.Session{
		UserID:        userID,
		Mode:          strings.TrimSpace(p.Mode),
		Duration:      p.Duration,
		ActivityID:    strings.TrimSpace(p.ActivityID),
		ActivityTitle: strings.TrimSpace(p.ActivityTitle),
		CompletedAt:   p.CompletedAt.UTC().Truncate(time.Second),
		Photo:         p.Photo,
		HasPhoto:      p.Photo != "",
		SensorResult:  p.SensorResult,
	}
	if p.StartedAt != nil {
		st := p.StartedAt.UTC().Truncate(time.Second)
		sess.StartedAt = &st
	}

	id, err := s.sessionRepo.Create(ctx, sess)
	if err != nil {
		return models.Session{}, err
	}
	sess.ID = id
	observability.RecordSession(s.metricMode(ctx, sess.Mode), sess.Duration)
	return sess, nil
}

// metricMode keeps the metric label set bounded by the catalog's modes.
func (s *SessionService) metricMode(ctx context.Context, mode string) string {
	modes, err := s.activityRepo.ListModes(ctx)
	if err != nil {
		return observability.UnknownMode
	}
	for _, m := range modes {
		if m == mode {
			return mode
		}
	}
	return observability.UnknownMode
}

// Get returns one of the user's sessions, photo included.
func (s *SessionService) Get(ctx context.Context, userID, id int) (models.Session, error) {
	sess, err := s.sessionRepo.Get(ctx, userID, id)
	if err != nil {
		return models.Session{}, err
	}
	if sess == nil {
		return models.Session{}, ErrSessionNotFound
	}
	return *sess, nil
}

// AttachPhoto sets or replaces the photo on an existing session.
func (s *SessionService) AttachPhoto(ctx context.Context, userID, id int, photo string) (models.Session, error) {
	if err := validatePhoto(photo); err != nil {
		return models.Session{}, err
	}
	ok, err := s.sessionRepo.AttachPhoto(ctx, userID, id, photo)
	if err != nil {
		return models.Session{}, err
	}
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	return s.Get(ctx, userID, id)
}
