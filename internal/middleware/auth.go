package middleware

import (
	"strings"

	"ui_review_backend/internal/config"
	"ui_review_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const AdminCookieName = "adminToken"

// AdminAuthMiddleware guards the admin routes. The token is accepted as a
// Bearer header or as the httpOnly session cookie set by login.
func AdminAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(AdminCookieName); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseAdminJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("admin", claims)
		c.Next()
	}
}
