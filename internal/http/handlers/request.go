package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/http/response"
	"github.com/yungbote/barisense-backend/internal/pkg/dbctx"
)

func parseID(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+entity+"_id", err)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body into dst. An empty body leaves dst at its zero
// value so that validation reports the missing fields.
func bindJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil {
		return true
	}
	err := json.NewDecoder(c.Request.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
	return false
}

func reqCtx(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}
