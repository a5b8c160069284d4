package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zellalite/internal/auth"
	"zellalite/internal/service"
)

type TagHandler struct {
	Tags *service.TagService
}

func (h *TagHandler) Register(r gin.IRoutes) {
	r.GET("/api/tags", h.list)
	r.POST("/api/tags", h.create)
}

// @Summary List the caller's tags
// @Tags tags
// @Success 200 {object} handler.apiResponse
// @Router /api/tags [get]
func (h *TagHandler) list(c *gin.Context) {
	tags, err := h.Tags.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, tags, nil)
}

type createTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary Create a tag, or return the existing one with the same name
// @Tags tags
// @Accept json
// @Success 201 {object} handler.apiResponse
// @Router /api/tags [post]
func (h *TagHandler) create(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		Error(c, http.StatusBadRequest, "name is required", nil)
		return
	}
	tag, err := h.Tags.GetOrCreate(c.Request.Context(), auth.UserID(c), name)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, tag)
}
