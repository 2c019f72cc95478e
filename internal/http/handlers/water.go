package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/http/response"
	"github.com/yungbote/barisense-backend/internal/services"
)

type WaterHandler struct {
	waters services.WaterService
}

func NewWaterHandler(waters services.WaterService) *WaterHandler {
	return &WaterHandler{waters: waters}
}

// GET /api/v1/waters
func (h *WaterHandler) List(c *gin.Context) {
	out, err := h.waters.List(reqCtx(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/v1/waters/:id
func (h *WaterHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "water")
	if !ok {
		return
	}
	out, err := h.waters.Get(reqCtx(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/v1/waters
func (h *WaterHandler) Create(c *gin.Context) {
	var in domain.WaterInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := h.waters.Create(reqCtx(c), in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// PUT /api/v1/waters/:id
func (h *WaterHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "water")
	if !ok {
		return
	}
	var in domain.WaterInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := h.waters.Update(reqCtx(c), id, in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /api/v1/waters/:id
func (h *WaterHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "water")
	if !ok {
		return
	}
	if err := h.waters.Delete(reqCtx(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondDeleted(c)
}
