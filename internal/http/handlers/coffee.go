package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/barisense-backend/internal/domain"
	"github.com/yungbote/barisense-backend/internal/http/response"
	"github.com/yungbote/barisense-backend/internal/services"
)

type CoffeeHandler struct {
	coffees services.CoffeeService
}

func NewCoffeeHandler(coffees services.CoffeeService) *CoffeeHandler {
	return &CoffeeHandler{coffees: coffees}
}

// GET /api/v1/coffees
func (h *CoffeeHandler) List(c *gin.Context) {
	out, err := h.coffees.List(reqCtx(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/v1/coffees/:id
func (h *CoffeeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "coffee")
	if !ok {
		return
	}
	out, err := h.coffees.Get(reqCtx(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/v1/coffees
func (h *CoffeeHandler) Create(c *gin.Context) {
	var in domain.CoffeeInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := h.coffees.Create(reqCtx(c), in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// PUT /api/v1/coffees/:id
func (h *CoffeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "coffee")
	if !ok {
		return
	}
	var in domain.CoffeeInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := h.coffees.Update(reqCtx(c), id, in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /api/v1/coffees/:id
func (h *CoffeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "coffee")
	if !ok {
		return
	}
	if err := h.coffees.Delete(reqCtx(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondDeleted(c)
}
