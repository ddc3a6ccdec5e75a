package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"littlewins/internal/models"
	"littlewins/internal/observability"
	"littlewins/internal/repository"
	"littlewins/internal/selector"
)

var (
	ErrModeRequired    = errors.New("mode required")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
)

// ActivityService picks activities for users and remembers what each user saw last.
type ActivityService struct {
	activities repository.ActivityRepo
	users      repository.Authorization
	selector   *selector.Selector
}

func NewActivityService(activities repository.ActivityRepo, users repository.Authorization, opts ...selector.Option) *ActivityService {
	return &ActivityService{
		activities: activities,
		users:      users,
		selector:   selector.New(activities, opts...),
	}
}

// Next selects an activity for userID. Without an explicit ExcludeID, the
// user's previous activity is excluded when it was shown for the same mode
// and duration. Returns selector.ErrNotFound when the mode has no activities.
func (s *ActivityService) Next(ctx context.Context, userID int, p NextParams) (models.Activity, error) {
	mode := strings.TrimSpace(p.Mode)
	if mode == "" {
		return models.Activity{}, ErrModeRequired
	}
	if p.Duration < 0 {
		return models.Activity{}, ErrInvalidDuration
	}

	exclude := strings.TrimSpace(p.ExcludeID)
	if exclude == "" {
		last, err := s.users.GetLastSelection(ctx, userID)
		if err != nil {
			return models.Activity{}, err
		}
		// Duration 0 ("no duration") is compared like any other value, so two
		// duration-less requests in a row also avoid a repeat.
		if last.ActivityID != "" && last.Mode == mode && last.Duration == p.Duration {
			exclude = last.ActivityID
		}
	}

	res, err := s.selector.Select(ctx, selector.Request{Mode: mode, Duration: p.Duration, ExcludeID: exclude})
	if err != nil {
		if errors.Is(err, selector.ErrNotFound) {
			observability.RecordSelection(mode, observability.OutcomeNotFound)
		}
		return models.Activity{}, err
	}
	observability.RecordSelection(mode, selectionOutcome(res))

	sel := models.LastSelection{ActivityID: res.Activity.ID, Mode: mode, Duration: p.Duration}
	if err := s.users.SaveLastSelection(ctx, userID, sel); err != nil {
		return models.Activity{}, fmt.Errorf("remember selection: %w", err)
	}
	return res.Activity, nil
}

func selectionOutcome(res selector.Result) string {
	switch {
	case res.DurationRelaxed:
		return observability.OutcomeDurationRelaxed
	case res.ExclusionRelaxed:
		return observability.OutcomeExclusionRelaxed
	default:
		return observability.OutcomeExact
	}
}

// Catalog returns every activity.
func (s *ActivityService) Catalog(ctx context.Context) ([]models.Activity, error) {
	acts, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range acts {
		acts[i] = selector.DecodePayload(acts[i])
	}
	return acts, nil
}

// Modes returns the distinct catalog modes.
func (s *ActivityService) Modes(ctx context.Context) ([]string, error) {
	return s.activities.ListModes(ctx)
}
