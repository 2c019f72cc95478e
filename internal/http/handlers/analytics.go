package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/barisense-backend/internal/http/response"
	"github.com/yungbote/barisense-backend/internal/services"
)

type AnalyticsHandler struct {
	analytics services.AnalyticsService
}

func NewAnalyticsHandler(analytics services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GET /api/v1/analytics/rankings
// GET /api/v1/analytics/rankings/:beverage
func (h *AnalyticsHandler) Ranking(c *gin.Context) {
	out, err := h.analytics.Ranking(reqCtx(c), c.Param("beverage"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/v1/analytics/quality-price
func (h *AnalyticsHandler) QualityPrice(c *gin.Context) {
	out, err := h.analytics.QualityPrice(reqCtx(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/v1/analytics/stability
func (h *AnalyticsHandler) Stability(c *gin.Context) {
	out, err := h.analytics.Stability(reqCtx(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/v1/analytics/retest
func (h *AnalyticsHandler) Retest(c *gin.Context) {
	out, err := h.analytics.Retest(reqCtx(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}
