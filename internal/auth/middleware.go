package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CookieName = "access_token"

	contextUserKey = "auth_user_id"
)

// Middleware accepts the access token either as the session cookie or as an
// Authorization bearer header and stores the resolved user id on the context.
func Middleware(j JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Cookie(CookieName); err == nil {
			token = cookie
		}
		if header := c.GetHeader("Authorization"); header != "" {
			if v, ok := strings.CutPrefix(header, "Bearer "); ok {
				token = strings.TrimSpace(v)
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "not authenticated"})
			return
		}
		userID, err := j.Verify(token, TokenAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "invalid token"})
			return
		}
		c.Set(contextUserKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Middleware, 0 when absent.
func UserID(c *gin.Context) uint64 {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint64)
	return id
}
