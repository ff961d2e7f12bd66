package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shahidarif12/AstraCommand/internal/auth"
)

const adminContextKey = "adminUsername"

func AdminFromContext(c *gin.Context) (string, bool) {
	username, ok := c.Get(adminContextKey)
	if !ok {
		return "", false
	}
	value, ok := username.(string)
	return value, ok && value != ""
}

// RequireAdmin guards operator endpoints with a Bearer session token.
func RequireAdmin(cfg auth.TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
			c.Abort()
			return
		}

		claims, err := auth.VerifyToken(parts[1], cfg)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
			c.Abort()
			return
		}

		c.Set(adminContextKey, claims.Username)
		c.Next()
	}
}
