package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zellalite/internal/auth"
	"zellalite/internal/service"
)

type JournalHandler struct {
	Journal *service.JournalService
}

func (h *JournalHandler) Register(r gin.IRoutes) {
	r.GET("/api/trades/:id/journal", h.list)
	r.POST("/api/trades/:id/journal", h.create)
	r.DELETE("/api/journal/:entry_id", h.remove)
}

// @Summary List journal entries for a trade
// @Tags journal
// @Success 200 {object} handler.apiResponse
// @Router /api/trades/{id}/journal [get]
func (h *JournalHandler) list(c *gin.Context) {
	tradeID := uint64Param(c, "id")
	if tradeID == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	entries, err := h.Journal.List(c.Request.Context(), auth.UserID(c), tradeID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, entries, nil)
}

type createEntryRequest struct {
	Body string `json:"body" binding:"required"`
}

// @Summary Attach a journal entry to a trade
// @Tags journal
// @Accept json
// @Success 201 {object} handler.apiResponse
// @Router /api/trades/{id}/journal [post]
func (h *JournalHandler) create(c *gin.Context) {
	tradeID := uint64Param(c, "id")
	if tradeID == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		Error(c, http.StatusBadRequest, "body is required", nil)
		return
	}
	entry, err := h.Journal.Add(c.Request.Context(), auth.UserID(c), tradeID, req.Body)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, entry)
}

// @Summary Delete a journal entry
// @Tags journal
// @Success 200 {object} handler.apiResponse
// @Router /api/journal/{entry_id} [delete]
func (h *JournalHandler) remove(c *gin.Context) {
	entryID := uint64Param(c, "entry_id")
	if entryID == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Journal.Delete(c.Request.Context(), auth.UserID(c), entryID); err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": entryID}, nil)
}
