package handler

import (
	"github.com/gin-gonic/gin"

	"zellalite/internal/auth"
	"zellalite/internal/service"
)

type MetricsHandler struct {
	Metrics *service.MetricsService
}

func (h *MetricsHandler) Register(r gin.IRoutes) {
	r.GET("/api/metrics/summary", h.summary)
	r.GET("/api/metrics/equity_curve", h.equityCurve)
}

// @Summary Aggregate performance over closed trades
// @Tags metrics
// @Param from query string false "RFC3339 lower bound on close time"
// @Param to query string false "RFC3339 upper bound on close time"
// @Success 200 {object} handler.apiResponse
// @Router /api/metrics/summary [get]
func (h *MetricsHandler) summary(c *gin.Context) {
	summary, err := h.Metrics.Summary(c.Request.Context(), auth.UserID(c),
		timeQueryPtr(c, "from"), timeQueryPtr(c, "to"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, summary, nil)
}

// @Summary Cumulative realized P/L over time
// @Tags metrics
// @Param from query string false "RFC3339 lower bound on close time"
// @Param to query string false "RFC3339 upper bound on close time"
// @Success 200 {object} handler.apiResponse
// @Router /api/metrics/equity_curve [get]
func (h *MetricsHandler) equityCurve(c *gin.Context) {
	points, err := h.Metrics.EquityCurve(c.Request.Context(), auth.UserID(c),
		timeQueryPtr(c, "from"), timeQueryPtr(c, "to"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, points, nil)
}
