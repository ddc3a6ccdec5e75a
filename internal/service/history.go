package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"littlewins/internal/models"
	"littlewins/internal/repository"
)

type HistoryService struct {
	sessionRepo repository.SessionRepo
}

func NewHistoryService(sessionRepo repository.SessionRepo) *HistoryService {
	return &HistoryService{sessionRepo: sessionRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f SessionFilter) (repository.SessionQuery, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return repository.SessionQuery{}, errInvalidTimeRange
	}

	return repository.SessionQuery{From: from, To: to, Mode: strings.TrimSpace(f.Mode)}, nil
}

// List returns the user's completed sessions matching f, oldest first.
func (s *HistoryService) List(ctx context.Context, userID int, f SessionFilter) ([]models.Session, error) {
	q, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.sessionRepo.List(ctx, userID, q)
}
