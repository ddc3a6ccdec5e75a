// Package selector picks a random activity for a mode, relaxing the duration
// and exclusion filters when they would leave nothing to choose from.
package selector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"littlewins/internal/models"
)

// ErrNotFound is returned when the requested mode has no activities at all.
var ErrNotFound = errors.New("no activities found for this mode")

// Store is the read side of the activity catalog.
type Store interface {
	FindByMode(ctx context.Context, mode string) ([]models.Activity, error)
}

// Request describes one selection. Duration 0 and ExcludeID "" mean "not given".
type Request struct {
	Mode      string
	Duration  int
	ExcludeID string
}

// Result is the picked activity plus which filters had to be dropped to find it.
type Result struct {
	Activity         models.Activity
	DurationRelaxed  bool
	ExclusionRelaxed bool
}

// Selector is safe for concurrent use.
type Selector struct {
	store Store
	intN  func(n int) int
}

// Option configures a Selector.
type Option func(*Selector)

// WithIntN replaces the uniform random source; intN(n) must return a value in [0, n).
func WithIntN(intN func(n int) int) Option {
	return func(s *Selector) { s.intN = intN }
}

func New(store Store, opts ...Option) *Selector {
	s := &Selector{store: store, intN: rand.Intn}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns a uniformly random activity of req.Mode.
func (s *Selector) Select(ctx context.Context, req Request) (Result, error) {
	all, err := s.store.FindByMode(ctx, req.Mode)
	if err != nil {
		return Result{}, fmt.Errorf("find activities for mode %q: %w", req.Mode, err)
	}
	if len(all) == 0 {
		return Result{}, ErrNotFound
	}

	var res Result
	candidates := all
	if req.Duration > 0 {
		candidates, res.DurationRelaxed = keepOrFallBack(candidates, fitsDuration(req.Duration))
	}
	if req.ExcludeID != "" {
		candidates, res.ExclusionRelaxed = keepOrFallBack(candidates, notID(req.ExcludeID))
	}

	res.Activity = DecodePayload(candidates[s.intN(len(candidates))])
	return res, nil
}

type predicate func(models.Activity) bool

// keepOrFallBack filters in by keep. If nothing survives, it returns in
// unchanged and reports that the filter was relaxed.
func keepOrFallBack(in []models.Activity, keep predicate) ([]models.Activity, bool) {
	out := make([]models.Activity, 0, len(in))
	for _, a := range in {
		if keep(a) {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return in, true
	}
	return out, false
}

func fitsDuration(d int) predicate {
	return func(a models.Activity) bool { return a.FitsDuration(d) }
}

func notID(id string) predicate {
	return func(a models.Activity) bool { return a.ID != id }
}

// DecodePayload fills Payload from RawPayload. Malformed JSON leaves it nil.
func DecodePayload(a models.Activity) models.Activity {
	a.Payload = nil
	if a.RawPayload == "" {
		return a
	}
	var v any
	if err := json.Unmarshal([]byte(a.RawPayload), &v); err == nil {
		a.Payload = v
	}
	return a
}
