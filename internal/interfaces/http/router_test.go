package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/kdevnel/device-portal/internal/application/analytics"
	"github.com/kdevnel/device-portal/internal/application/dto"
	"github.com/kdevnel/device-portal/internal/application/quote"
	"github.com/kdevnel/device-portal/internal/application/usecase"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/infrastructure/memory"
	"github.com/kdevnel/device-portal/internal/infrastructure/pdf"
	apphttp "github.com/kdevnel/device-portal/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app     *fiber.App
	store   *memory.Store
	devices *memory.DeviceRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	devices := memory.NewDeviceRepository(store)
	quotes := memory.NewQuoteRepository(store)
	shipments := memory.NewShipmentRepository(store)

	app := apphttp.NewApp(apphttp.AppConfig{Name: "device-portal-test"}, apphttp.RouterDeps{
		DeviceUC:    usecase.NewDeviceUseCase(devices),
		ShipmentUC:  usecase.NewShipmentUseCase(shipments, memory.NewTxRunner(store)),
		QuoteUC:     quote.NewUseCase(quotes, devices),
		QuotePDF:    quote.NewPDFUseCase(quotes, pdf.NewMarotoQuoteGenerator("Device Portal Ltd")),
		DashboardUC: appanalytics.NewDashboardUseCase(devices, quotes, shipments, memory.NewAnalyticsRepository(store)),
	})
	return &testServer{app: app, store: store, devices: devices}
}

func (s *testServer) addDevice(t *testing.T, name, price string, status entity.DeviceStatus) int {
	t.Helper()
	d := &entity.Device{
		Name:         name,
		Model:        "M-" + name,
		MonthlyPrice: decimal.RequireFromString(price),
		PurchaseDate: time.Now().UTC(),
		Status:       status,
	}
	require.NoError(t, s.devices.Create(context.Background(), d))
	return d.ID
}

func (s *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func assertError(t *testing.T, resp *http.Response, status int, code string) dto.ErrorResponse {
	t.Helper()
	require.Equal(t, status, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, code, body.Code)
	assert.NotEmpty(t, body.Message)
	return body
}

func quoteBody(deviceID int) map[string]any {
	return map[string]any{
		"device_id":       deviceID,
		"customer_name":   "Acme Ltd",
		"duration_months": 12,
		"support_tier":    3,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Server
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, resp.Header.Get(apphttp.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(apphttp.RequestIDHeader, "req-42")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-42", resp.Header.Get(apphttp.RequestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	assertError(t, s.do(t, http.MethodGet, "/api/nothing-here", nil), http.StatusNotFound, "NOT_FOUND")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, apphttp.StatusFor("NOT_FOUND"))
	assert.Equal(t, http.StatusUnprocessableEntity, apphttp.StatusFor("UNAVAILABLE"))
	assert.Equal(t, http.StatusBadRequest, apphttp.StatusFor("OUT_OF_RANGE"))
	assert.Equal(t, http.StatusConflict, apphttp.StatusFor("CONFLICT"))
	assert.Equal(t, http.StatusInternalServerError, apphttp.StatusFor("SOMETHING_ELSE"))
}

var routeParam = regexp.MustCompile(`:([a-z_]+)`)

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "docs", "swagger.json"))
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	s := newTestServer(t)
	for _, r := range s.app.GetRoutes(true) {
		if !strings.HasPrefix(r.Path, "/api/") || r.Method == http.MethodHead {
			continue
		}
		path := routeParam.ReplaceAllString(strings.TrimSuffix(r.Path, "/"), "{$1}")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "missing path %s", path) {
			assert.Contains(t, ops, strings.ToLower(r.Method), "missing %s %s", r.Method, path)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Quotes
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteCalculate(t *testing.T) {
	s := newTestServer(t)
	id := s.addDevice(t, "Laptop", "100.00", entity.DeviceStatusActive)

	resp := s.do(t, http.MethodPost, "/api/quotes/calculate", quoteBody(id))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[map[string]any](t, resp)
	assert.NotContains(t, out, "id")
	assert.NotContains(t, out, "created_at")
	assert.Equal(t, "Premium", out["support_tier_name"])
	assert.Equal(t, "Laptop", out["device_name"])

	total, err := decimal.NewFromString(out["total_cost"].(string))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(1800)), total.String())
}

func TestQuoteCreateAndGet(t *testing.T) {
	s := newTestServer(t)
	id := s.addDevice(t, "Laptop", "100.00", entity.DeviceStatusActive)

	body := quoteBody(id)
	body["total_cost"] = "1.00"
	resp := s.do(t, http.MethodPost, "/api/quotes", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.QuoteResponse](t, resp)
	assert.Positive(t, created.ID)
	assert.Equal(t, "50.00", created.SupportRate.StringFixed(2))
	assert.Equal(t, "150.00", created.TotalMonthlyCost.StringFixed(2))
	assert.Equal(t, "1800.00", created.TotalCost.StringFixed(2))

	resp = s.do(t, http.MethodGet, "/api/quotes/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.QuoteResponse](t, resp)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "M-Laptop", got.DeviceModel)

	resp = s.do(t, http.MethodGet, "/api/quotes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.QuoteListResponse](t, resp)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Items, 1)
}

func TestQuoteFailures(t *testing.T) {
	s := newTestServer(t)
	retired := s.addDevice(t, "Old phone", "10.00", entity.DeviceStatusRetired)

	assertError(t, s.do(t, http.MethodPost, "/api/quotes", quoteBody(99)), http.StatusNotFound, "NOT_FOUND")
	body := assertError(t, s.do(t, http.MethodPost, "/api/quotes", quoteBody(retired)), http.StatusUnprocessableEntity, "UNAVAILABLE")
	assert.Contains(t, body.Message, "not available")

	bad := quoteBody(retired)
	bad["duration_months"] = 61
	assertError(t, s.do(t, http.MethodPost, "/api/quotes/calculate", bad), http.StatusBadRequest, "OUT_OF_RANGE")

	bad = quoteBody(retired)
	bad["support_tier"] = 7
	assertError(t, s.do(t, http.MethodPost, "/api/quotes/calculate", bad), http.StatusBadRequest, "INVALID_ENUM")

	req := httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assertError(t, resp, http.StatusBadRequest, "INVALID_INPUT")

	assertError(t, s.do(t, http.MethodGet, "/api/quotes/12", nil), http.StatusNotFound, "NOT_FOUND")
	assertError(t, s.do(t, http.MethodGet, "/api/quotes/abc", nil), http.StatusBadRequest, "INVALID_INPUT")

	list := s.do(t, http.MethodGet, "/api/quotes", nil)
	assert.Equal(t, 0, decode[dto.QuoteListResponse](t, list).Total)
}

func TestQuoteListPaging(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/quotes?page=1&page_size=20", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[map[string]any](t, resp)
	assert.Equal(t, float64(0), list["total"])
	assert.Equal(t, []any{}, list["items"])

	calls := s.store.Calls()
	assertError(t, s.do(t, http.MethodGet, "/api/quotes?page_size=0", nil), http.StatusBadRequest, "OUT_OF_RANGE")
	assertError(t, s.do(t, http.MethodGet, "/api/quotes?page_size=101", nil), http.StatusBadRequest, "OUT_OF_RANGE")
	assert.Equal(t, calls, s.store.Calls())

	assertError(t, s.do(t, http.MethodGet, "/api/quotes?support_tier=x", nil), http.StatusBadRequest, "INVALID_ENUM")
}

func TestQuoteTierDistribution(t *testing.T) {
	s := newTestServer(t)
	id := s.addDevice(t, "Tablet", "20.00", entity.DeviceStatusActive)
	for _, tier := range []int{1, 1, 3} {
		body := quoteBody(id)
		body["support_tier"] = tier
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/quotes", body).StatusCode)
	}

	resp := s.do(t, http.MethodGet, "/api/quotes/support-tier-distribution", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.TierDistributionResponse{Basic: 2, Standard: 0, Premium: 1}, decode[dto.TierDistributionResponse](t, resp))
}

func TestQuotePDF(t *testing.T) {
	s := newTestServer(t)
	id := s.addDevice(t, "Laptop", "100.00", entity.DeviceStatusActive)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/quotes", quoteBody(id)).StatusCode)

	resp := s.do(t, http.MethodGet, "/api/quotes/1/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	assertError(t, s.do(t, http.MethodGet, "/api/quotes/2/pdf", nil), http.StatusNotFound, "NOT_FOUND")
}

// ──────────────────────────────────────────────────────────────────────────────
// Devices
// ──────────────────────────────────────────────────────────────────────────────

func TestDeviceEndpoints(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/devices", map[string]any{"name": "Pixel 8", "model": "GKWS6", "monthly_price": "38.99"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.DeviceResponse](t, resp)
	assert.Equal(t, "Active", created.StatusName)

	resp = s.do(t, http.MethodPost, "/api/devices", map[string]any{"name": "pixel 8", "model": "GKWS6", "monthly_price": "38.99"})
	assertError(t, resp, http.StatusConflict, "CONFLICT")

	resp = s.do(t, http.MethodPatch, "/api/devices/1/status", map[string]any{"status": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Retired", decode[dto.DeviceResponse](t, resp).StatusName)

	resp = s.do(t, http.MethodGet, "/api/devices/status-distribution", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.DeviceStatusDistributionResponse{Retired: 1}, decode[dto.DeviceStatusDistributionResponse](t, resp))

	resp = s.do(t, http.MethodGet, "/api/devices?page=1&page_size=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.DeviceListResponse](t, resp).Total)

	resp = s.do(t, http.MethodDelete, "/api/devices/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assertError(t, s.do(t, http.MethodGet, "/api/devices/1", nil), http.StatusNotFound, "NOT_FOUND")
	assertError(t, s.do(t, http.MethodDelete, "/api/devices/1", nil), http.StatusNotFound, "NOT_FOUND")
}

func TestDeviceDeleteReferencedByQuote(t *testing.T) {
	s := newTestServer(t)
	id := s.addDevice(t, "Laptop", "100.00", entity.DeviceStatusActive)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/quotes", quoteBody(id)).StatusCode)

	assertError(t, s.do(t, http.MethodDelete, "/api/devices/1", nil), http.StatusConflict, "CONFLICT")
}

// ──────────────────────────────────────────────────────────────────────────────
// Shipments
// ──────────────────────────────────────────────────────────────────────────────

func TestShipmentEndpoints(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{
		"tracking_number":    "TRK-100",
		"customer_name":      "Acme Ltd",
		"estimated_delivery": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"destination":        "1 High Street, Leeds",
	}

	resp := s.do(t, http.MethodPost, "/api/shipments", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ShipmentResponse](t, resp)
	assert.Equal(t, "Processing", created.StatusName)

	assertError(t, s.do(t, http.MethodPost, "/api/shipments", body), http.StatusConflict, "CONFLICT")

	resp = s.do(t, http.MethodGet, "/api/shipments/track/TRK-100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, decode[dto.ShipmentResponse](t, resp).ID)
	assertError(t, s.do(t, http.MethodGet, "/api/shipments/track/NOPE", nil), http.StatusNotFound, "NOT_FOUND")

	resp = s.do(t, http.MethodPatch, "/api/shipments/1/status", map[string]any{"status": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, decode[dto.ShipmentResponse](t, resp).ActualDelivery)

	assertError(t, s.do(t, http.MethodPatch, "/api/shipments/1/status", map[string]any{"status": 2}), http.StatusConflict, "CONFLICT")
	assertError(t, s.do(t, http.MethodPatch, "/api/shipments/1/status", map[string]any{"status": 9}), http.StatusBadRequest, "INVALID_ENUM")

	resp = s.do(t, http.MethodGet, "/api/shipments?status=3&page_size=500", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.ShipmentListResponse](t, resp).Total)

	resp = s.do(t, http.MethodGet, "/api/shipments/status-distribution", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.ShipmentStatusDistributionResponse{Delivered: 1}, decode[dto.ShipmentStatusDistributionResponse](t, resp))

	assertError(t, s.do(t, http.MethodGet, "/api/shipments/2", nil), http.StatusNotFound, "NOT_FOUND")
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardSummary(t *testing.T) {
	s := newTestServer(t)
	id := s.addDevice(t, "Laptop", "100.00", entity.DeviceStatusActive)
	s.addDevice(t, "Phone", "40.00", entity.DeviceStatusUnderRepair)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/quotes", quoteBody(id)).StatusCode)

	resp := s.do(t, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 2, sum.TotalDevices)
	assert.Equal(t, 1, sum.Quotes.Premium)
	assert.Equal(t, 1, sum.MonthlyQuoteCount)
	require.Len(t, sum.TopDevices, 1)
	assert.Equal(t, "Laptop", sum.TopDevices[0].DeviceName)
}
