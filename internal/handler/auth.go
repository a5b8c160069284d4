package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zellalite/internal/auth"
	"zellalite/internal/service"
)

type AuthHandler struct {
	Users *service.UserService
	JWT   auth.JWT
}

func (h *AuthHandler) Register(r *gin.Engine) {
	g := r.Group("/api/auth")
	g.POST("/signup", h.signup)
	g.POST("/login", h.login)
	g.POST("/refresh", h.refresh)
	g.POST("/logout", h.logout)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// @Summary Create an account
// @Tags auth
// @Accept json
// @Success 201 {object} handler.apiResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	user, err := h.Users.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, user)
}

// @Summary Log in and receive a token pair
// @Tags auth
// @Accept json
// @Success 200 {object} handler.apiResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	user, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		ServiceError(c, err)
		return
	}
	pair, err := h.issuePair(user.ID)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	h.setCookie(c, pair.AccessToken)
	Ok(c, pair, nil)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary Exchange a refresh token for a new pair
// @Tags auth
// @Accept json
// @Success 200 {object} handler.apiResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	userID, err := h.JWT.Verify(req.RefreshToken, auth.TokenRefresh)
	if err != nil {
		Error(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	pair, err := h.issuePair(userID)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	h.setCookie(c, pair.AccessToken)
	Ok(c, pair, nil)
}

// @Summary Clear the session cookie
// @Tags auth
// @Success 200 {object} handler.apiResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	Ok(c, gin.H{"status": "logged_out"}, nil)
}

func (h *AuthHandler) issuePair(userID uint64) (tokenPairResponse, error) {
	access, err := h.JWT.SignAccess(userID)
	if err != nil {
		return tokenPairResponse{}, err
	}
	refresh, err := h.JWT.SignRefresh(userID)
	if err != nil {
		return tokenPairResponse{}, err
	}
	return tokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (h *AuthHandler) setCookie(c *gin.Context, token string) {
	maxAge := int(h.JWT.AccessTTL.Seconds())
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", false, true)
}
