package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

func apiKeyRouter(key, header string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAPIKeyMiddleware(logger.Nop(), key, header).RequireAPIKey())
	r.GET("/api/v1/coffees", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestAPIKeyDisabledWhenUnset(t *testing.T) {
	rec := httptest.NewRecorder()
	apiKeyRouter("", "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/coffees", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}

func TestAPIKeyRequired(t *testing.T) {
	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong", "X-API-Key", "nope", http.StatusUnauthorized},
		{"good", "X-API-Key", "s3cret", http.StatusOK},
		{"custom header ignored", "X-Other", "s3cret", http.StatusUnauthorized},
	}
	r := apiKeyRouter("s3cret", "")
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/coffees", nil)
		if tc.header != "" {
			req.Header.Set(tc.header, tc.value)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: status got=%d want=%d", tc.name, rec.Code, tc.want)
		}
		if tc.want != http.StatusUnauthorized {
			continue
		}
		var body struct {
			Error struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if body.Error.Code != "unauthorized" || body.Error.Message != "Clé API invalide" {
			t.Fatalf("%s: unexpected body %s", tc.name, rec.Body.String())
		}
	}
}

func TestAPIKeyCustomHeader(t *testing.T) {
	r := apiKeyRouter("s3cret", "X-Barisense-Key")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/coffees", nil)
	req.Header.Set("X-Barisense-Key", "s3cret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}
