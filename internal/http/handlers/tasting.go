package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/http/response"
	"github.com/yungbote/barisense-backend/internal/services"
)

// TastingHandler has no update route; tastings are immutable once recorded.
type TastingHandler struct {
	tastings services.TastingService
}

func NewTastingHandler(tastings services.TastingService) *TastingHandler {
	return &TastingHandler{tastings: tastings}
}

// GET /api/v1/tastings
func (h *TastingHandler) List(c *gin.Context) {
	out, err := h.tastings.List(reqCtx(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/v1/tastings/:id
func (h *TastingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "tasting")
	if !ok {
		return
	}
	out, err := h.tastings.Get(reqCtx(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/v1/tastings
// Also upserts the verdict of the coffee the shot belongs to.
func (h *TastingHandler) Create(c *gin.Context) {
	var in domain.TastingInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := h.tastings.Create(reqCtx(c), in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// DELETE /api/v1/tastings/:id
func (h *TastingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "tasting")
	if !ok {
		return
	}
	if err := h.tastings.Delete(reqCtx(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondDeleted(c)
}
