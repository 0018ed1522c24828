package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"auto_grow/internal/handlers"
	"auto_grow/internal/logger"
	"auto_grow/internal/models"
	"auto_grow/internal/repository"
	"auto_grow/internal/repository/db"
	"auto_grow/internal/service"
	"auto_grow/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	url      string
	services *service.Service
	state    string
}

// newBackend serves the real handlers over an in-memory database, accepting
// admin/secret.
func newBackend(t *testing.T) *backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	services := service.NewService(repository.NewRepository(conn), service.NewAuthService("admin", "secret"), logger.Nop())
	srv := httptest.NewServer(handlers.NewHandler(services, logger.Nop()).InitRoutes())
	t.Cleanup(srv.Close)

	return &backend{
		url:      srv.URL,
		services: services,
		state:    filepath.Join(t.TempDir(), "state.db"),
	}
}

type result struct {
	code   int
	stdout string
	stderr string
}

func (b *backend) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--base-url", b.url, "--state", b.state, "--log-level", "error"}, args...)
	code := run(context.Background(), full, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

// seed creates one staged device with a protocol and a reading.
func (b *backend) seed(t *testing.T) models.Device {
	t.Helper()
	ctx := context.Background()

	stage, err := b.services.Stages.Create(ctx, models.StageCreate{Name: "vegetative"})
	require.NoError(t, err)
	_, err = b.services.Protocols.Create(ctx, models.ProtocolCreate{Name: "veg-18h", StageID: stage.ID})
	require.NoError(t, err)
	dev, err := b.services.Devices.Create(ctx, models.DeviceCreate{Name: "box-1", Status: "active"})
	require.NoError(t, err)
	dev, err = b.services.Devices.Update(ctx, dev.ID, models.DeviceUpdate{StageID: &stage.ID})
	require.NoError(t, err)
	_, err = b.services.Trackings.Create(ctx, models.TrackingCreate{
		DeviceID: dev.ID, Temperature: 24.5, AirHumidity: 60, SoilHumidity: 41, Co2: 800, Ppfd: 10,
	})
	require.NoError(t, err)
	return dev
}

func TestRun_LoginPersistsAcrossRuns(t *testing.T) {
	b := newBackend(t)

	res := b.run(t, "", "status")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "unauthenticated\n", res.stdout)

	res = b.run(t, "wrong\n", "-u", "admin", "login")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "login failed")

	res = b.run(t, "secret\n", "-u", "admin", "login")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "logged in as admin")

	res = b.run(t, "", "status")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "authenticated as admin\n", res.stdout)

	res = b.run(t, "", "logout")
	require.Equal(t, 0, res.code)

	res = b.run(t, "", "status")
	assert.Equal(t, "unauthenticated\n", res.stdout)
}

func TestRun_PromptsForUsernameAndPassword(t *testing.T) {
	b := newBackend(t)

	res := b.run(t, "admin\nsecret", "login")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "username: ")
	assert.Contains(t, res.stdout, "password: ")
	assert.Contains(t, res.stdout, "logged in as admin")
}

func TestRun_DomainCommandsRequireLogin(t *testing.T) {
	b := newBackend(t)

	res := b.run(t, "", "devices")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not logged in")
}

func TestRun_ListsCatalog(t *testing.T) {
	b := newBackend(t)
	dev := b.seed(t)
	require.Equal(t, 0, b.run(t, "", "-u", "admin", "-p", "secret", "login").code)

	res := b.run(t, "", "devices")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "box-1")
	assert.Contains(t, res.stdout, "vegetative")

	res = b.run(t, "", "stages")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "vegetative")

	res = b.run(t, "", "protocols")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "veg-18h")

	res = b.run(t, "", "actions")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "STATUS")

	id := itoa(dev.ID)

	res = b.run(t, "", "trackings", id)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "24.5")
	assert.Contains(t, res.stdout, "540") // lux

	res = b.run(t, "", "trackings", id, "week")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "veg-18h")

	res = b.run(t, "", "latest", id)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "24.5")

	res = b.run(t, "", "dashboard")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "1 devices, 1 stages, 1 protocols")
	assert.Contains(t, res.stdout, "box-1")
}

func TestRun_UsageErrors(t *testing.T) {
	b := newBackend(t)
	require.Equal(t, 0, b.run(t, "", "-u", "admin", "-p", "secret", "login").code)

	cases := [][]string{
		{},
		{"bogus"},
		{"trackings"},
		{"trackings", "abc"},
		{"trackings", "1", "decade"},
		{"latest", "0"},
	}
	for _, args := range cases {
		res := b.run(t, "", args...)
		assert.Equal(t, 2, res.code, "args %v", args)
	}
}

func TestRun_LatestWithoutReadingsIsNotFound(t *testing.T) {
	b := newBackend(t)
	dev, err := b.services.Devices.Create(context.Background(), models.DeviceCreate{Name: "empty"})
	require.NoError(t, err)
	require.Equal(t, 0, b.run(t, "", "-u", "admin", "-p", "secret", "login").code)

	res := b.run(t, "", "latest", itoa(dev.ID))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not found")

	// a 404 leaves the session alone
	assert.Equal(t, "authenticated as admin\n", b.run(t, "", "status").stdout)
}

func TestRun_RejectedCredentialsClearSession(t *testing.T) {
	b := newBackend(t)

	// persist a pair the server no longer accepts
	conn, err := db.InitDB(b.state)
	require.NoError(t, err)
	require.NoError(t, session.NewStore(repository.NewStateSQLite(conn)).Set("admin", "rotated"))
	require.NoError(t, conn.Close())

	assert.Equal(t, "authenticated as admin\n", b.run(t, "", "status").stdout)

	res := b.run(t, "", "devices")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "session was cleared")

	assert.Equal(t, "unauthenticated\n", b.run(t, "", "status").stdout)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
