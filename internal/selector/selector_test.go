package selector

import (
	"context"
	"errors"
	"testing"

	"littlewins/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	byMode map[string][]models.Activity
	err    error
	calls  []string
}

func (f *fakeStore) FindByMode(_ context.Context, mode string) ([]models.Activity, error) {
	f.calls = append(f.calls, mode)
	if f.err != nil {
		return nil, f.err
	}
	return f.byMode[mode], nil
}

func newStore(acts ...models.Activity) *fakeStore {
	f := &fakeStore{byMode: map[string][]models.Activity{}}
	for _, a := range acts {
		f.byMode[a.Mode] = append(f.byMode[a.Mode], a)
	}
	return f
}

func act(id, mode string, hints ...int) models.Activity {
	return models.Activity{ID: id, Mode: mode, Title: id, DurationHints: hints}
}

// every index in [0, n) so each candidate is observed
func allPicks(t *testing.T, s Store, req Request, n int) []Result {
	t.Helper()
	out := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		idx := i
		sel := New(s, WithIntN(func(k int) int { return idx % k }))
		res, err := sel.Select(context.Background(), req)
		require.NoError(t, err)
		out = append(out, res)
	}
	return out
}

func TestSelect_EmptyHintsFitAnyDuration(t *testing.T) {
	store := newStore(act("m1", "Mood", 3, 5), act("m2", "Mood"))

	for _, res := range allPicks(t, store, Request{Mode: "Mood", Duration: 10}, 4) {
		assert.Equal(t, "m2", res.Activity.ID)
		assert.False(t, res.DurationRelaxed)
	}
}

func TestSelect_ExclusionOfOnlyCandidateIsIgnored(t *testing.T) {
	store := newStore(act("m1", "Mood", 3, 5))

	res, err := New(store).Select(context.Background(), Request{Mode: "Mood", Duration: 3, ExcludeID: "m1"})
	require.NoError(t, err)
	assert.Equal(t, "m1", res.Activity.ID)
	assert.True(t, res.ExclusionRelaxed)
}

func TestSelect_UnknownModeIsNotFound(t *testing.T) {
	store := newStore(act("m1", "Mood", 3))

	_, err := New(store).Select(context.Background(), Request{Mode: "Unknown"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSelect_DurationMatchedByNobodyFallsBackToMode(t *testing.T) {
	store := newStore(act("b1", "Brain", 3, 5), act("b2", "Brain", 5, 10), act("m1", "Mood", 15))

	for _, res := range allPicks(t, store, Request{Mode: "Brain", Duration: 15}, 4) {
		assert.Equal(t, "Brain", res.Activity.Mode)
		assert.True(t, res.DurationRelaxed)
	}
}

func TestSelect_DurationFilterIsHonoured(t *testing.T) {
	store := newStore(
		act("r1", "Relax", 3, 5, 10),
		act("r2", "Relax", 3, 5),
		act("r3", "Relax", 10),
		act("r4", "Relax"),
	)

	seen := map[string]bool{}
	for _, res := range allPicks(t, store, Request{Mode: "Relax", Duration: 10}, 6) {
		assert.True(t, res.Activity.FitsDuration(10), "picked %s", res.Activity.ID)
		seen[res.Activity.ID] = true
	}
	assert.Equal(t, map[string]bool{"r1": true, "r3": true, "r4": true}, seen)
}

func TestSelect_ExcludedIDNeverReturnedWhenAlternativesExist(t *testing.T) {
	store := newStore(act("k1", "Kind", 3), act("k2", "Kind", 3), act("k3", "Kind", 3))

	for _, res := range allPicks(t, store, Request{Mode: "Kind", Duration: 3, ExcludeID: "k2"}, 6) {
		assert.NotEqual(t, "k2", res.Activity.ID)
		assert.False(t, res.ExclusionRelaxed)
	}
}

func TestSelect_ExclusionAppliesAfterDurationRelaxation(t *testing.T) {
	store := newStore(act("b1", "Brain", 3), act("b2", "Brain", 5))

	// 15 matches nobody, so both are candidates again; b1 is then excluded.
	res, err := New(store, WithIntN(func(int) int { return 0 })).
		Select(context.Background(), Request{Mode: "Brain", Duration: 15, ExcludeID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, "b2", res.Activity.ID)
	assert.True(t, res.DurationRelaxed)
	assert.False(t, res.ExclusionRelaxed)
}

func TestSelect_NoDurationUsesWholeMode(t *testing.T) {
	store := newStore(act("a", "Mood", 3), act("b", "Mood", 10))

	seen := map[string]bool{}
	for _, res := range allPicks(t, store, Request{Mode: "Mood"}, 2) {
		seen[res.Activity.ID] = true
		assert.False(t, res.DurationRelaxed)
	}
	assert.Len(t, seen, 2)
}

func TestSelect_UniformIndexRange(t *testing.T) {
	store := newStore(act("a", "Mood"), act("b", "Mood"), act("c", "Mood"))

	var gotN []int
	sel := New(store, WithIntN(func(n int) int {
		gotN = append(gotN, n)
		return n - 1
	}))
	res, err := sel.Select(context.Background(), Request{Mode: "Mood", ExcludeID: "a"})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, gotN)
	assert.Equal(t, "c", res.Activity.ID)
}

func TestSelect_DefaultRandomSourceStaysInMode(t *testing.T) {
	store := newStore(act("a", "Mood"), act("b", "Mood"), act("x", "Other"))
	sel := New(store)

	for i := 0; i < 50; i++ {
		res, err := sel.Select(context.Background(), Request{Mode: "Mood", ExcludeID: "a"})
		require.NoError(t, err)
		assert.Equal(t, "b", res.Activity.ID)
	}
}

func TestSelect_PayloadDecoding(t *testing.T) {
	good := act("p1", "Mood")
	good.RawPayload = `{"steps":["inhale","exhale"]}`
	bad := act("p2", "Other")
	bad.RawPayload = `{not json`
	store := newStore(good, bad)

	res, err := New(store).Select(context.Background(), Request{Mode: "Mood"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"steps": []any{"inhale", "exhale"}}, res.Activity.Payload)

	res, err = New(store).Select(context.Background(), Request{Mode: "Other"})
	require.NoError(t, err)
	assert.Equal(t, "p2", res.Activity.ID)
	assert.Nil(t, res.Activity.Payload)
}

func TestSelect_StoreErrorIsWrapped(t *testing.T) {
	boom := errors.New("db down")
	store := &fakeStore{err: boom}

	_, err := New(store).Select(context.Background(), Request{Mode: "Mood"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestKeepOrFallBack(t *testing.T) {
	in := []models.Activity{act("a", "M", 3), act("b", "M", 5)}

	out, relaxed := keepOrFallBack(in, fitsDuration(5))
	assert.False(t, relaxed)
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)

	out, relaxed = keepOrFallBack(in, fitsDuration(99))
	assert.True(t, relaxed)
	assert.Equal(t, in, out)
}
