package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/http/response"
	"github.com/yungbote/barisense-backend/internal/services"
)

type ShotHandler struct {
	shots services.ShotService
}

func NewShotHandler(shots services.ShotService) *ShotHandler {
	return &ShotHandler{shots: shots}
}

// GET /api/v1/shots
func (h *ShotHandler) List(c *gin.Context) {
	out, err := h.shots.List(reqCtx(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/v1/shots/:id
func (h *ShotHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "shot")
	if !ok {
		return
	}
	out, err := h.shots.Get(reqCtx(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/v1/shots
func (h *ShotHandler) Create(c *gin.Context) {
	var in domain.ShotInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := h.shots.Create(reqCtx(c), in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// PUT /api/v1/shots/:id
func (h *ShotHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "shot")
	if !ok {
		return
	}
	var in domain.ShotInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := h.shots.Update(reqCtx(c), id, in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /api/v1/shots/:id
func (h *ShotHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "shot")
	if !ok {
		return
	}
	if err := h.shots.Delete(reqCtx(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondDeleted(c)
}
