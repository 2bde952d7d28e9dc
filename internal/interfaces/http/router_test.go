package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriconnect/agrointel/internal/application/advisory"
	"github.com/agriconnect/agrointel/internal/config"
	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/prometheus"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	metrics := prometheus.New()
	svc, err := advisory.New(cat, logging.NewNopLogger(),
		advisory.WithSeeder(func() int64 { return 42 }),
		advisory.WithClock(func() time.Time {
			return time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
		}),
		advisory.WithMetrics(metrics),
	)
	require.NoError(t, err)

	return NewRouter(RouterDeps{
		Service: svc,
		Catalog: cat,
		Logger:  logging.NewNopLogger(),
		Metrics: metrics,
		Version: "test",
		Mode:    gin.TestMode,
	})
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestWeatherEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/weather", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Ashanti", body["region_id"])
	assert.Len(t, body["days"], 7)

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/weather?as_of=2024-03-01", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/weather?as_of=March", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "COMMON_002", decodeBody(t, w)["code"])

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Atlantis/weather", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CAT_001", decodeBody(t, w)["code"])
}

func TestYieldEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/crops/Maize/yield?farm_size=2.5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Maize", body["crop_id"])
	assert.Equal(t, 2.5, body["farm_size_hectares"])

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/crops/Maize/yield?with_weather=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/crops/Maize/yield?farm_size=big", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/crops/Maize/yield?farm_size=-1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ENG_001", decodeBody(t, w)["code"])

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/crops/Quinoa/yield", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CAT_002", decodeBody(t, w)["code"])
}

func TestPriceEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/crops/Cocoa/price", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(30), body["horizon_days"])
	assert.Len(t, body["days"], 30)

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/crops/Cocoa/price?horizon_days=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["days"], 7)

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/crops/Cocoa/price?horizon_days=soon", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/crops/Cocoa/price?horizon_days=-3", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ENG_002", decodeBody(t, w)["code"])
}

func TestRecommendationsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	payload := map[string]interface{}{
		"farmer": map[string]interface{}{
			"farm_size_hectares": 3.0,
			"experience_years":   6,
			"previous_crops":     []string{"Maize"},
		},
	}
	w := doRequest(t, r, http.MethodPost, "/api/v1/regions/Ashanti/recommendations", payload)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	recs := body["recommendations"].([]interface{})
	assert.Len(t, recs, 6)
	first := recs[0].(map[string]interface{})
	assert.Contains(t, first, "overall")
	assert.Contains(t, first, "level")

	payload["candidates"] = []string{"Cocoa", "Maize"}
	w = doRequest(t, r, http.MethodPost, "/api/v1/regions/Ashanti/recommendations", payload)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["recommendations"], 2)

	w = doRequest(t, r, http.MethodPost, "/api/v1/regions/Ashanti/recommendations", map[string]interface{}{
		"farmer": map[string]interface{}{"farm_size_hectares": 0},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ENG_001", decodeBody(t, w)["code"])

	req := httptest.NewRequest(http.MethodPost, "/api/v1/regions/Ashanti/recommendations",
		strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportEndpoint(t *testing.T) {
	r := newTestRouter(t)

	payload := map[string]interface{}{
		"farmer_id": "farmer-1",
		"region_id": "Ashanti",
		"allocations": []map[string]interface{}{
			{"crop_id": "Cocoa", "hectares": 2.0},
			{"crop_id": "Maize", "hectares": 1.0},
		},
		"farmer": map[string]interface{}{
			"farm_size_hectares": 3.0,
			"experience_years":   6,
		},
	}
	w := doRequest(t, r, http.MethodPost, "/api/v1/reports", payload)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "farmer-1", body["farmer_id"])
	assert.Len(t, body["crops"], 2)
	assert.NotEmpty(t, body["id"])

	// binding:"required" rejects a payload without allocations
	w = doRequest(t, r, http.MethodPost, "/api/v1/reports", map[string]interface{}{
		"farmer_id": "farmer-1",
		"region_id": "Ashanti",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/crops", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["crops"], 6)

	w = doRequest(t, r, http.MethodGet, "/api/v1/crops/Cocoa", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cocoa", decodeBody(t, w)["ID"])

	w = doRequest(t, r, http.MethodGet, "/api/v1/crops/Quinoa", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["regions"])

	w = doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])

	w = doRequest(t, r, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.NotContains(t, body, "cache")
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	doRequest(t, r, http.MethodGet, "/api/v1/regions/Ashanti/weather", nil)

	w := doRequest(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "agrointel_http_requests_total")
	assert.Contains(t, w.Body.String(), `operation="simulate_weather"`)
}

func TestServerShutdown(t *testing.T) {
	cfg := config.ServerConfig{
		Port:            0, // ephemeral port, the test never dials in
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 2 * time.Second,
	}
	srv := NewServer(cfg, newTestRouter(t), logging.NewNopLogger())

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	// Give the listener a moment to bind before shutting down.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
