package handlers

import (
	"context"
	"net/http"
	"time"

	"littlewins/internal/models"
	"littlewins/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	token    string
	user     models.User
	err      error
	meErr    error
	parseID  int
	parseErr error

	lastEmail      string
	lastUsername   string
	lastPassword   string
	lastIdentity   string
	lastParseToken string
}

func (m *mockAuth) Register(_ context.Context, email, username, password string) (string, models.User, error) {
	m.lastEmail, m.lastUsername, m.lastPassword = email, username, password
	return m.token, m.user, m.err
}
func (m *mockAuth) Login(_ context.Context, identity, password string) (string, models.User, error) {
	m.lastIdentity, m.lastPassword = identity, password
	return m.token, m.user, m.err
}
func (m *mockAuth) Me(_ context.Context, userID int) (models.User, error) {
	u := m.user
	u.ID = userID
	return u, m.meErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockActivities struct {
	next    models.Activity
	nextErr error
	acts    []models.Activity
	modes   []string
	listErr error

	lastUserID int
	lastParams service.NextParams
}

func (m *mockActivities) Next(_ context.Context, userID int, p service.NextParams) (models.Activity, error) {
	m.lastUserID = userID
	m.lastParams = p
	return m.next, m.nextErr
}
func (m *mockActivities) Catalog(context.Context) ([]models.Activity, error) {
	return m.acts, m.listErr
}
func (m *mockActivities) Modes(context.Context) ([]string, error) {
	return m.modes, m.listErr
}

type mockSessions struct {
	sess      models.Session
	err       error
	lastP     service.SessionParams
	lastID    int
	lastPhoto string
	calls     int
}

func (m *mockSessions) Record(_ context.Context, _ int, p service.SessionParams) (models.Session, error) {
	m.calls++
	m.lastP = p
	return m.sess, m.err
}
func (m *mockSessions) Get(_ context.Context, _ int, id int) (models.Session, error) {
	m.calls++
	m.lastID = id
	return m.sess, m.err
}
func (m *mockSessions) AttachPhoto(_ context.Context, _ int, id int, photo string) (models.Session, error) {
	m.calls++
	m.lastID = id
	m.lastPhoto = photo
	return m.sess, m.err
}

type mockHistory struct {
	resp       []models.Session
	err        error
	lastFilter service.SessionFilter
}

func (m *mockHistory) List(_ context.Context, _ int, f service.SessionFilter) ([]models.Session, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockStats struct {
	stats   models.Stats
	days    []models.DayCount
	err     error
	lastNow time.Time
}

func (m *mockStats) Summary(_ context.Context, _ int, now time.Time) (models.Stats, error) {
	m.lastNow = now
	return m.stats, m.err
}
func (m *mockStats) DailyCounts(context.Context, int) ([]models.DayCount, error) {
	return m.days, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withAuth(req *http.Request) *http.Request {
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
