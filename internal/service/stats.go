package service

import (
	"context"
	"time"

	"littlewins/internal/models"
	"littlewins/internal/repository"
)

const (
	statsWindowDays = 7
	dayKeyLayout    = "2006-01-02"
	dayLabelLayout  = "Mon, Jan 2"
)

// StatsService aggregates a user's session history.
type StatsService struct {
	activityRepo repository.ActivityRepo
	sessionRepo  repository.SessionRepo
}

func NewStatsService(activityRepo repository.ActivityRepo, sessionRepo repository.SessionRepo) *StatsService {
	return &StatsService{activityRepo: activityRepo, sessionRepo: sessionRepo}
}

// Summary returns per-day counts for the 7 UTC days ending at now (oldest
// first), per-mode counts over the catalog's modes, and the overall total.
func (s *StatsService) Summary(ctx context.Context, userID int, now time.Time) (models.Stats, error) {
	modes, err := s.activityRepo.ListModes(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	sessions, err := s.sessionRepo.List(ctx, userID, repository.SessionQuery{})
	if err != nil {
		return models.Stats{}, err
	}

	days := lastDays(now, statsWindowDays)
	index := make(map[string]int, len(days))
	for i, d := range days {
		index[d.Key] = i
	}

	modeCounts := make(map[string]int, len(modes))
	for _, m := range modes {
		modeCounts[m] = 0
	}

	for _, sess := range sessions {
		if i, ok := index[sess.CompletedAt.UTC().Format(dayKeyLayout)]; ok {
			days[i].Count++
		}
		if _, known := modeCounts[sess.Mode]; known {
			modeCounts[sess.Mode]++
		}
	}

	return models.Stats{Days: days, ModeCounts: modeCounts, Total: len(sessions)}, nil
}

// lastDays returns n zero-count days ending with now's UTC date, oldest first.
func lastDays(now time.Time, n int) []models.DayCount {
	now = now.UTC()
	out := make([]models.DayCount, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		out = append(out, models.DayCount{
			Key:   d.Format(dayKeyLayout),
			Label: d.Format(dayLabelLayout),
		})
	}
	return out
}

// DailyCounts returns sessions per calendar day, newest first.
func (s *StatsService) DailyCounts(ctx context.Context, userID int) ([]models.DayCount, error) {
	return s.sessionRepo.DailyCounts(ctx, userID)
}
