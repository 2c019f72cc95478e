package http

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/barisense-backend/internal/data/repos"
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/data/store/storetest"
	httpH "github.com/yungbote/barisense-backend/internal/http/handlers"
	httpMW "github.com/yungbote/barisense-backend/internal/http/middleware"
	"github.com/yungbote/barisense-backend/internal/observability"
	"github.com/yungbote/barisense-backend/internal/services"
)

func newTestRouter(t *testing.T, apiKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := storetest.Logger(t)
	gw := storetest.Gateway(t, store.NewDocument())
	metrics := observability.NewMetrics()

	coffeeRepo := repos.NewCoffeeRepo(gw, log)
	waterRepo := repos.NewWaterRepo(gw, log)
	shotRepo := repos.NewShotRepo(gw, log)
	tastingRepo := repos.NewTastingRepo(gw, log)
	verdictRepo := repos.NewVerdictRepo(gw, log)

	return NewRouter(RouterConfig{
		Log:              log,
		Metrics:          metrics,
		AllowOrigins:     []string{"*"},
		APIKeyMiddleware: httpMW.NewAPIKeyMiddleware(log, apiKey, ""),
		HealthHandler:    httpH.NewHealthHandler("barisense", "test"),
		CoffeeHandler: httpH.NewCoffeeHandler(
			services.NewCoffeeService(gw, log, coffeeRepo, waterRepo, shotRepo, tastingRepo, verdictRepo),
		),
		WaterHandler: httpH.NewWaterHandler(services.NewWaterService(gw, log, waterRepo)),
		ShotHandler: httpH.NewShotHandler(
			services.NewShotService(gw, log, coffeeRepo, waterRepo, shotRepo, tastingRepo),
		),
		TastingHandler: httpH.NewTastingHandler(
			services.NewTastingService(gw, log, metrics, shotRepo, tastingRepo, verdictRepo),
		),
		VerdictHandler: httpH.NewVerdictHandler(services.NewVerdictService(gw, log, coffeeRepo, verdictRepo)),
		AnalyticsHandler: httpH.NewAnalyticsHandler(
			services.NewAnalyticsService(gw, log, coffeeRepo, shotRepo, tastingRepo, verdictRepo),
		),
	})
}

type call struct {
	method string
	path   string
	body   any
	header map[string]string
}

func do(t *testing.T, r *gin.Engine, c call) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if c.body != nil {
		switch b := c.body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t, "s3cret")
	for _, path := range []string{"/api/health", "/healthcheck"} {
		rec := do(t, r, call{method: nethttp.MethodGet, path: path})
		require.Equal(t, nethttp.StatusOK, rec.Code, path)
		body := decode[map[string]any](t, rec)
		require.Equal(t, "ok", body["status"])
		require.Equal(t, "barisense", body["app"])
		require.NotEmpty(t, body["timestamp"])
	}
}

func TestAPIRequiresKeyWhenConfigured(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	rec := do(t, r, call{method: nethttp.MethodGet, path: "/api/v1/coffees"})
	require.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthorized", decode[errorBody](t, rec).Error.Code)

	rec = do(t, r, call{
		method: nethttp.MethodGet,
		path:   "/api/v1/coffees",
		header: map[string]string{"X-API-Key": "s3cret"},
	})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestTastingFlowDerivesVerdictAndRanking(t *testing.T) {
	r := newTestRouter(t, "")

	rec := do(t, r, call{method: nethttp.MethodPost, path: "/api/v1/coffees", body: map[string]any{
		"name":         "Ethiopie",
		"roaster":      "Torréfacteur",
		"format":       "grain",
		"weight_grams": 250,
		"price_eur":    15,
		"purchased_at": "2024-03-01",
	}})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	coffee := decode[map[string]any](t, rec)
	require.InDelta(t, 1.08, coffee["cost_per_shot_eur"], 1e-9)
	coffeeID := coffee["id"].(string)

	rec = do(t, r, call{method: nethttp.MethodPost, path: "/api/v1/shots", body: map[string]any{
		"coffee_id":               coffeeID,
		"beverage_type":           "expresso",
		"grind_setting":           "12",
		"dose_in_grams":           18,
		"beverage_weight_grams":   40,
		"extraction_time_seconds": 28,
	}})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	shot := decode[map[string]any](t, rec)
	require.InDelta(t, 2.22, shot["brew_ratio"], 1e-9)

	labels := map[string]any{"shot_id": shot["id"]}
	for _, f := range []string{"acidity", "bitterness", "body", "aroma", "balance", "finish", "overall"} {
		labels[f+"_label"] = "expressif"
	}
	rec = do(t, r, call{method: nethttp.MethodPost, path: "/api/v1/tastings", body: labels})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	require.InDelta(t, 4.0, decode[map[string]any](t, rec)["sensory_mean"], 1e-9)

	rec = do(t, r, call{method: nethttp.MethodGet, path: "/api/v1/verdicts"})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	verdicts := decode[[]map[string]any](t, rec)
	require.Len(t, verdicts, 1)
	require.Equal(t, "a_affiner", verdicts[0]["status"])

	rec = do(t, r, call{method: nethttp.MethodGet, path: "/api/v1/analytics/rankings/expresso"})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	ranking := decode[[]map[string]any](t, rec)
	require.Len(t, ranking, 1)
	require.Equal(t, "expressif", ranking[0]["score_label"])
	require.Equal(t, "à affiner", ranking[0]["verdict_label"])
	require.Equal(t, "expresso", ranking[0]["beverage_filter"])

	rec = do(t, r, call{method: nethttp.MethodGet, path: "/api/v1/analytics/rankings/ristretto"})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = do(t, r, call{method: nethttp.MethodGet, path: "/api/v1/analytics/retest"})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = do(t, r, call{method: nethttp.MethodDelete, path: "/api/v1/coffees/" + coffeeID})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "deleted", decode[map[string]string](t, rec)["status"])

	for _, path := range []string{"/api/v1/shots", "/api/v1/tastings", "/api/v1/verdicts"} {
		rec = do(t, r, call{method: nethttp.MethodGet, path: path})
		require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()), path)
	}
}

func TestErrorEnvelopes(t *testing.T) {
	r := newTestRouter(t, "")
	cases := []struct {
		name   string
		c      call
		status int
		code   string
	}{
		{
			name:   "missing fields",
			c:      call{method: nethttp.MethodPost, path: "/api/v1/waters", body: map[string]any{}},
			status: nethttp.StatusBadRequest,
			code:   "missing_fields",
		},
		{
			name:   "empty body",
			c:      call{method: nethttp.MethodPost, path: "/api/v1/coffees"},
			status: nethttp.StatusBadRequest,
			code:   "missing_fields",
		},
		{
			name:   "bad json",
			c:      call{method: nethttp.MethodPost, path: "/api/v1/waters", body: "{"},
			status: nethttp.StatusBadRequest,
			code:   "invalid_json",
		},
		{
			name:   "bad id",
			c:      call{method: nethttp.MethodGet, path: "/api/v1/shots/nope"},
			status: nethttp.StatusBadRequest,
			code:   "invalid_shot_id",
		},
		{
			name:   "unknown coffee",
			c:      call{method: nethttp.MethodDelete, path: "/api/v1/coffees/6f1c1c7e-0000-4000-8000-000000000001"},
			status: nethttp.StatusNotFound,
			code:   "coffee_not_found",
		},
		{
			name:   "unknown beverage",
			c:      call{method: nethttp.MethodGet, path: "/api/v1/analytics/rankings/cafe_long"},
			status: nethttp.StatusNotFound,
			code:   "ranking_not_found",
		},
	}
	for _, tc := range cases {
		rec := do(t, r, tc.c)
		require.Equal(t, tc.status, rec.Code, "%s: %s", tc.name, rec.Body.String())
		require.Equal(t, tc.code, decode[errorBody](t, rec).Error.Code, tc.name)
	}

	rec := do(t, r, call{method: nethttp.MethodPost, path: "/api/v1/waters", body: map[string]any{}})
	require.Equal(t, "Champs manquants : label, source", decode[errorBody](t, rec).Error.Message)
}

func TestWaterDeleteIsIdempotent(t *testing.T) {
	r := newTestRouter(t, "")
	rec := do(t, r, call{method: nethttp.MethodDelete, path: "/api/v1/waters/6f1c1c7e-0000-4000-8000-000000000002"})
	require.Equal(t, nethttp.StatusOK, rec.Code)
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	r := newTestRouter(t, "")
	do(t, r, call{method: nethttp.MethodGet, path: "/api/v1/waters"})
	rec := do(t, r, call{method: nethttp.MethodGet, path: "/metrics"})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `route="/api/v1/waters"`)
}
