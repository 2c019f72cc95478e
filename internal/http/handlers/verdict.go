package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/http/response"
	"github.com/yungbote/barisense-backend/internal/services"
)

type VerdictHandler struct {
	verdicts services.VerdictService
}

func NewVerdictHandler(verdicts services.VerdictService) *VerdictHandler {
	return &VerdictHandler{verdicts: verdicts}
}

type verdictRequest struct {
	ID *uuid.UUID `json:"id"`
	domain.VerdictInput
}

// GET /api/v1/verdicts
func (h *VerdictHandler) List(c *gin.Context) {
	out, err := h.verdicts.List(reqCtx(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/v1/verdicts/:id
func (h *VerdictHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "verdict")
	if !ok {
		return
	}
	out, err := h.verdicts.Get(reqCtx(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/v1/verdicts
// Upserts: an "id" in the body wins over coffee_id. 201 only when a verdict was created.
func (h *VerdictHandler) Upsert(c *gin.Context) {
	var req verdictRequest
	if !bindJSON(c, &req) {
		return
	}
	out, created, err := h.verdicts.Upsert(reqCtx(c), req.ID, req.VerdictInput)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, out)
}

// PUT /api/v1/verdicts/:id
func (h *VerdictHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "verdict")
	if !ok {
		return
	}
	var in domain.VerdictInput
	if !bindJSON(c, &in) {
		return
	}
	out, _, err := h.verdicts.Upsert(reqCtx(c), &id, in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /api/v1/verdicts/:id
func (h *VerdictHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "verdict")
	if !ok {
		return
	}
	if err := h.verdicts.Delete(reqCtx(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondDeleted(c)
}
