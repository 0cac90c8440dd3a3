package fiber_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "firehose-dashboard/internal/dashboard/adapters/http/fiber"
	"firehose-dashboard/internal/dashboard/core/domain"
	"firehose-dashboard/internal/dashboard/core/usecase"

	"github.com/gofiber/fiber/v2"
)

// Fake usecase implementing the interface that handler depends on.
type fakeBuildDashboardUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error)
	lastInput usecase.BuildDashboardInput
	called    bool
}

func (f *fakeBuildDashboardUseCase) Execute(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error) {
	f.called = true
	f.lastInput = in
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, in)
	}
	return nil, nil
}

func setupApp(t *testing.T, uc httpadapter.BuildDashboardUseCase) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := httpadapter.NewDashboardHandler(uc, nil)
	app.Get("/", h.GetPage)
	app.Get("/api/dashboard", h.GetDashboard)
	app.Get("/api/dashboard/daily.xlsx", h.ExportDaily)
	return app
}

func doGet(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()
	return resp, body
}

func sampleDashboard(period int) *domain.Dashboard {
	now := time.Date(2024, time.January, 30, 10, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{Date: now.Add(-time.Hour), Reason: `{"Clients_Device":{"count":120}}`},
		{Date: now.Add(-2 * time.Hour), Reason: `{"Clients_Device":{"count":80},"BLE_Tags":{"count":7}}`},
	}
	return domain.BuildDashboard(domain.NewWindow(period, now), records, time.UTC)
}

func successUC() *fakeBuildDashboardUseCase {
	return &fakeBuildDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error) {
			p := in.Period
			if p == 0 {
				p = 30
			}
			return sampleDashboard(p), nil
		},
	}
}

// ------------------------------------------------------------
// JSON: success
// ------------------------------------------------------------

func TestGetDashboard_Success(t *testing.T) {
	uc := successUC()
	app := setupApp(t, uc)

	resp, body := doGet(t, app, "/api/dashboard")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %s)", resp.StatusCode, body)
	}
	if uc.lastInput.Period != 0 {
		t.Fatalf("expected default period (0), got %d", uc.lastInput.Period)
	}

	var got httpadapter.DashboardResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if got.TotalRuns != 2 {
		t.Fatalf("expected total_runs=2, got %d", got.TotalRuns)
	}
	if got.Window.Start != "2024-01-01" || got.Window.End != "2024-01-30" {
		t.Fatalf("unexpected window: %+v", got.Window)
	}
	if got.Averages.ClientsDevice == nil || *got.Averages.ClientsDevice != 100 {
		t.Fatalf("expected Clients_Device avg 100, got %v", got.Averages.ClientsDevice)
	}
	if got.Averages.TagDevice != nil {
		t.Fatalf("expected Tag_Device avg null, got %v", *got.Averages.TagDevice)
	}
	if len(got.Daily) != 1 {
		t.Fatalf("expected 1 daily row, got %d", len(got.Daily))
	}
	row := got.Daily[0]
	if row.ClientsDevice.Status != "green" || row.ClientsDevice.Display != "100.00" {
		t.Fatalf("unexpected Clients_Device cell: %+v", row.ClientsDevice)
	}
	if row.TagDevice.Status != "grey" || row.TagDevice.Display != "N/A" || row.TagDevice.Value != nil {
		t.Fatalf("unexpected Tag_Device cell: %+v", row.TagDevice)
	}
	if row.BLETags.Status != "red" {
		t.Fatalf("unexpected BLE_Tags cell: %+v", row.BLETags)
	}
	if len(got.Series) != 2 || !got.Series[0].Date.Before(got.Series[1].Date) {
		t.Fatalf("expected ascending series, got %+v", got.Series)
	}
}

func TestGetDashboard_PeriodOverride(t *testing.T) {
	uc := successUC()
	app := setupApp(t, uc)

	resp, _ := doGet(t, app, "/api/dashboard?period=7")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if uc.lastInput.Period != 7 {
		t.Fatalf("expected period=7, got %d", uc.lastInput.Period)
	}
}

// ------------------------------------------------------------
// INVALID PERIOD -> 400
// ------------------------------------------------------------

func TestGetDashboard_InvalidPeriodParam(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		uc := &fakeBuildDashboardUseCase{
			ExecuteFn: func(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error) {
				t.Fatalf("usecase should not be called on invalid query params")
				return nil, nil
			},
		}
		app := setupApp(t, uc)

		resp, _ := doGet(t, app, "/api/dashboard?period="+raw)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("period=%s: expected status 400, got %d", raw, resp.StatusCode)
		}
	}
}

func TestGetDashboard_UsecaseInvalidPeriod(t *testing.T) {
	uc := &fakeBuildDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error) {
			return nil, usecase.ErrInvalidPeriod
		},
	}
	app := setupApp(t, uc)

	resp, body := doGet(t, app, "/api/dashboard?period=9999")

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
	var got httpadapter.ErrorResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if got.Error != "invalid_period" {
		t.Fatalf("expected invalid_period, got %s", got.Error)
	}
}

// ------------------------------------------------------------
// DATA SOURCE ERROR -> 503
// ------------------------------------------------------------

func TestGetDashboard_DataSourceError(t *testing.T) {
	uc := &fakeBuildDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error) {
			return nil, &usecase.DataSourceError{Err: errors.New("dial tcp: connection refused")}
		},
	}
	app := setupApp(t, uc)

	resp, body := doGet(t, app, "/api/dashboard")

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.StatusCode)
	}
	if strings.Contains(string(body), "connection refused") {
		t.Fatalf("driver error must not leak to clients: %s", body)
	}
}

func TestGetDashboard_InternalError(t *testing.T) {
	uc := &fakeBuildDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error) {
			return nil, errors.New("boom")
		},
	}
	app := setupApp(t, uc)

	resp, _ := doGet(t, app, "/api/dashboard")

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
}

// ------------------------------------------------------------
// HTML PAGE
// ------------------------------------------------------------

func TestGetPage_Success(t *testing.T) {
	app := setupApp(t, successUC())

	resp, body := doGet(t, app, "/?period=30")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %s", ct)
	}
	if !strings.Contains(string(body), "Firehose Data Pipeline (30 days)") {
		t.Fatalf("expected title in page")
	}
}

func TestGetPage_DataSourceErrorRendersErrorState(t *testing.T) {
	uc := &fakeBuildDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error) {
			return nil, &usecase.DataSourceError{Err: errors.New("timeout")}
		},
	}
	app := setupApp(t, uc)

	resp, body := doGet(t, app, "/")

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `role="alert"`) {
		t.Fatalf("expected visible error state, got: %s", body)
	}
}

// ------------------------------------------------------------
// XLSX EXPORT
// ------------------------------------------------------------

func TestExportDaily_Success(t *testing.T) {
	app := setupApp(t, successUC())

	resp, body := doGet(t, app, "/api/dashboard/daily.xlsx")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if cd := resp.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(cd, "firehose-daily-2024-01-01-to-2024-01-30.xlsx") {
		t.Fatalf("unexpected content disposition: %s", cd)
	}
	// xlsx is a zip archive
	if len(body) < 2 || body[0] != 'P' || body[1] != 'K' {
		t.Fatalf("expected zip payload")
	}
}

func TestExportDaily_DataSourceError(t *testing.T) {
	uc := &fakeBuildDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error) {
			return nil, &usecase.DataSourceError{Err: errors.New("timeout")}
		},
	}
	app := setupApp(t, uc)

	resp, _ := doGet(t, app, "/api/dashboard/daily.xlsx")

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.StatusCode)
	}
}

// ------------------------------------------------------------
// HUGE COUNTS -> still serializable
// ------------------------------------------------------------

func TestGetDashboard_LargeCountsSerialize(t *testing.T) {
	uc := &fakeBuildDashboardUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.BuildDashboardInput) (*domain.Dashboard, error) {
			now := time.Date(2024, time.January, 30, 10, 0, 0, 0, time.UTC)
			records := []domain.Record{
				{Date: now.Add(-time.Hour), Reason: `{"Clients_Device":{"count":1e308}}`},
				{Date: now.Add(-2 * time.Hour), Reason: `{"Clients_Device":{"count":1e308}}`},
			}
			return domain.BuildDashboard(domain.NewWindow(30, now), records, time.UTC), nil
		},
	}
	app := setupApp(t, uc)

	resp, body := doGet(t, app, "/api/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %s)", resp.StatusCode, body)
	}

	var got httpadapter.DashboardResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if got.Averages.ClientsDevice == nil || *got.Averages.ClientsDevice != 1e308 {
		t.Fatalf("expected Clients_Device avg 1e308, got %v", got.Averages.ClientsDevice)
	}

	resp, body = doGet(t, app, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if strings.Contains(string(body), "Inf") {
		t.Fatalf("page must not render an infinite mean")
	}
}
