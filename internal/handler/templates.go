package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zellalite/internal/service"
)

type TemplateHandler struct{}

func (h *TemplateHandler) Register(r gin.IRoutes) {
	r.GET("/api/templates/trades.csv", h.tradesCSV)
}

// @Summary Download the CSV import template
// @Tags templates
// @Produce text/csv
// @Success 200 {string} string "header row plus one example row"
// @Router /api/templates/trades.csv [get]
func (h *TemplateHandler) tradesCSV(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="trades.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(service.CSVTemplate()))
}
