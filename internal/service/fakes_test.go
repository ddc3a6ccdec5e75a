package service

import (
	"context"
	"sort"
	"time"

	"littlewins/internal/models"
	"littlewins/internal/repository"
)

// fakeSessionRepo is a minimal in-memory repository.SessionRepo.
type fakeSessionRepo struct {
	sessions []models.Session
	nextID   int

	gotQuery  repository.SessionQuery
	listCalls int

	createErr error
	listErr   error
	getErr    error
	attachErr error
	counts    []models.DayCount
}

func (f *fakeSessionRepo) Create(_ context.Context, s models.Session) (int, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	s.ID = f.nextID
	f.sessions = append(f.sessions, s)
	return s.ID, nil
}

func (f *fakeSessionRepo) Get(_ context.Context, userID, id int) (*models.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, s := range f.sessions {
		if s.ID == id && s.UserID == userID {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) List(_ context.Context, userID int, q repository.SessionQuery) ([]models.Session, error) {
	f.listCalls++
	f.gotQuery = q
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Session
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}

func (f *fakeSessionRepo) AttachPhoto(_ context.Context, userID, id int, photo string) (bool, error) {
	if f.attachErr != nil {
		return false, f.attachErr
	}
	for i := range f.sessions {
		if f.sessions[i].ID == id && f.sessions[i].UserID == userID {
			f.sessions[i].Photo = photo
			f.sessions[i].HasPhoto = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSessionRepo) DailyCounts(_ context.Context, _ int) ([]models.DayCount, error) {
	return f.counts, f.listErr
}

// fakeActivityRepo serves a fixed catalog.
type fakeActivityRepo struct {
	acts     []models.Activity
	modes    []string
	err      error
	modesErr error
}

func (f *fakeActivityRepo) FindByMode(_ context.Context, mode string) ([]models.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Activity
	for _, a := range f.acts {
		if a.Mode == mode {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) List(_ context.Context) ([]models.Activity, error) {
	return f.acts, f.err
}

func (f *fakeActivityRepo) ListModes(_ context.Context) ([]string, error) {
	return f.modes, f.modesErr
}

func (f *fakeActivityRepo) Upsert(_ context.Context, acts []models.Activity) error {
	f.acts = append(f.acts, acts...)
	return f.err
}

func fixedZone(name string, offsetSec int) *time.Location {
	return time.FixedZone(name, offsetSec)
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}
