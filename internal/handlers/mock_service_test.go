package handlers

import (
	"context"
	"net/http"

	"auto_grow/internal/models"
	"auto_grow/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

// mockAuth accepts exactly user/pass unless err is set.
type mockAuth struct {
	user, pass string
	err        error

	calls        int
	lastUsername string
	lastPassword string
}

func (m *mockAuth) Verify(username, password string) error {
	m.calls++
	m.lastUsername = username
	m.lastPassword = password
	if m.err != nil {
		return m.err
	}
	if username == "" || password == "" {
		return service.ErrMissingCredentials
	}
	if username != m.user || password != m.pass {
		return service.ErrInvalidCredentials
	}
	return nil
}

type mockCRUD[T, C, U any] struct {
	items   []T
	item    T
	err     error
	created C
	updated U
	lastID  int64
	deleted int
}

func (m *mockCRUD[T, C, U]) List(ctx context.Context) ([]T, error) {
	return m.items, m.err
}
func (m *mockCRUD[T, C, U]) Get(ctx context.Context, id int64) (T, error) {
	m.lastID = id
	return m.item, m.err
}
func (m *mockCRUD[T, C, U]) Create(ctx context.Context, in C) (T, error) {
	m.created = in
	return m.item, m.err
}
func (m *mockCRUD[T, C, U]) Update(ctx context.Context, id int64, in U) (T, error) {
	m.lastID = id
	m.updated = in
	return m.item, m.err
}
func (m *mockCRUD[T, C, U]) Delete(ctx context.Context, id int64) error {
	m.lastID = id
	m.deleted++
	return m.err
}

type mockTrackings struct {
	mockCRUD[models.Tracking, models.TrackingCreate, models.TrackingUpdate]

	latest     models.Tracking
	latestErr  error
	historyErr error
	lastWindow models.HistoryWindow
	lastDevice int64
}

func (m *mockTrackings) ListByDevice(ctx context.Context, deviceID int64) ([]models.Tracking, error) {
	m.lastDevice = deviceID
	return m.items, m.err
}
func (m *mockTrackings) History(ctx context.Context, deviceID int64, window models.HistoryWindow) ([]models.Tracking, error) {
	m.lastDevice = deviceID
	m.lastWindow = window
	return m.items, m.historyErr
}
func (m *mockTrackings) Latest(ctx context.Context, deviceID int64) (models.Tracking, error) {
	m.lastDevice = deviceID
	return m.latest, m.latestErr
}

// ---- Shared Test Helpers ----

const (
	testUser = "admin"
	testPass = "secret"
)

func newTestRouter(s *service.Service) *gin.Engine {
	if s.Authorization == nil {
		s.Authorization = &mockAuth{user: testUser, pass: testPass}
	}
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func basicAuth(user, pass string) http.Header {
	h := http.Header{}
	if user != "" || pass != "" {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.SetBasicAuth(user, pass)
		h.Set("Authorization", r.Header.Get("Authorization"))
	}
	return h
}
