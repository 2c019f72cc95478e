package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/barisense-backend/internal/http/response"
	"github.com/yungbote/barisense-backend/internal/pkg/ctxutil"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

const DefaultAPIKeyHeader = "X-API-Key"

var errInvalidAPIKey = errors.New("Clé API invalide")

type APIKeyMiddleware struct {
	log    *logger.Logger
	key    []byte
	header string
}

// NewAPIKeyMiddleware with an empty key lets every request through.
func NewAPIKeyMiddleware(log *logger.Logger, key, header string) *APIKeyMiddleware {
	header = strings.TrimSpace(header)
	if header == "" {
		header = DefaultAPIKeyHeader
	}
	return &APIKeyMiddleware{
		log:    log.With("middleware", "APIKeyMiddleware"),
		key:    []byte(strings.TrimSpace(key)),
		header: header,
	}
}

func (m *APIKeyMiddleware) Enabled() bool { return len(m.key) > 0 }

func (m *APIKeyMiddleware) Header() string { return m.header }

func (m *APIKeyMiddleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Enabled() {
			c.Next()
			return
		}
		got := []byte(strings.TrimSpace(c.GetHeader(m.header)))
		if subtle.ConstantTimeCompare(got, m.key) != 1 {
			m.log.Warn("rejected request", append([]interface{}{
				"auth_header", m.header,
				"path", c.Request.URL.Path,
				"provided", len(got) > 0,
			}, ctxutil.LogFields(c.Request.Context())...)...)
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errInvalidAPIKey)
			c.Abort()
			return
		}
		c.Next()
	}
}
