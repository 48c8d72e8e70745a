package inventory

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(svc *Service) *fiber.App {
	app := fiber.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)
	return app
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}

func TestHandleSync(t *testing.T) {
	tests := []struct {
		name       string
		summary    Summary
		wantStatus int
	}{
		{
			name:       "Completed",
			summary:    Summary{ItemsUpdated: 3, PagesProcessed: 2, StopReason: StopCompleted},
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "Aborted",
			summary:    Summary{PagesProcessed: 2, Failed: true, StopReason: StopTransportError, Error: "page 3"},
			wantStatus: fiber.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&blockingSyncer{summary: tt.summary}, nil, nil, nil)
			app := setupApp(svc)

			resp, err := app.Test(httptest.NewRequest("POST", "/inventory/sync", nil), int((5 * time.Second).Milliseconds()))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decode[map[string]any](t, resp.Body)
			assert.Equal(t, float64(tt.summary.PagesProcessed), body["pages_processed"])
			assert.Equal(t, string(tt.summary.StopReason), body["stop_reason"])
			assert.Equal(t, tt.summary.Failed, body["failed"])
		})
	}
}

func TestHandleLastSync(t *testing.T) {
	svc := NewService(&blockingSyncer{summary: Summary{ItemsUpdated: 7}}, nil, nil, nil)
	app := setupApp(svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/inventory/sync/last", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	svc.Run(t.Context())

	resp, err = app.Test(httptest.NewRequest("GET", "/inventory/sync/last", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 7, decode[Summary](t, resp.Body).ItemsUpdated)
}

func TestHandleListReports(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		app := setupApp(NewService(&blockingSyncer{}, nil, nil, nil))

		resp, err := app.Test(httptest.NewRequest("GET", "/inventory/reports", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Empty", func(t *testing.T) {
		app := setupApp(NewService(&blockingSyncer{}, &memoryArchive{}, nil, nil))

		resp, err := app.Test(httptest.NewRequest("GET", "/inventory/reports", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Empty(t, decode[[]ReportInfo](t, resp.Body))
	})

	t.Run("AfterRun", func(t *testing.T) {
		archive := &memoryArchive{}
		started := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
		svc := NewService(&blockingSyncer{summary: Summary{StartedAt: started}}, archive, nil, nil)
		svc.Run(t.Context())
		app := setupApp(svc)

		resp, err := app.Test(httptest.NewRequest("GET", "/inventory/reports?limit=5", nil))
		require.NoError(t, err)
		reports := decode[[]ReportInfo](t, resp.Body)
		require.Len(t, reports, 1)
		assert.Equal(t, "reports/2026/05/06/070809.json", reports[0].Key)
	})
}

func TestHandleGetReport(t *testing.T) {
	archive := &memoryArchive{}
	started := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	svc := NewService(&blockingSyncer{summary: Summary{ItemsUpdated: 2, StartedAt: started}}, archive, nil, nil)
	svc.Run(t.Context())
	app := setupApp(svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/inventory/reports/reports/2026/05/06/070809.json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[Summary](t, resp.Body).ItemsUpdated)

	resp, err = app.Test(httptest.NewRequest("GET", "/inventory/reports/reports/1999/01/01/000000.json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	disabled := setupApp(NewService(&blockingSyncer{}, nil, nil, nil))
	resp, err = disabled.Test(httptest.NewRequest("GET", "/inventory/reports/reports/x.json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestFeature(t *testing.T) {
	f := NewFeature(NewService(&blockingSyncer{}, nil, nil, nil), nil)

	assert.Equal(t, "inventory", f.Name())
	assert.True(t, f.IsEnabled())

	app := fiber.New()
	require.NoError(t, f.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/inventory/sync/last", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
