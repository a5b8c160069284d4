package handler

import (
	"github.com/gin-gonic/gin"

	"zellalite/internal/auth"
	"zellalite/internal/service"
)

type UserHandler struct {
	Users *service.UserService
}

func (h *UserHandler) Register(r gin.IRoutes) {
	r.GET("/api/users/me", h.me)
}

// @Summary Current user profile
// @Tags users
// @Success 200 {object} handler.apiResponse
// @Router /api/users/me [get]
func (h *UserHandler) me(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), auth.UserID(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, user, nil)
}
