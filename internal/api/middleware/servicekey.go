package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

// ServiceKeyAuth is the demo-mode guard used when no Supabase JWT secret is
// configured: the caller presents the raw service key and names the user it
// acts for. Only the bcrypt hash of the key lives in the environment.
func ServiceKeyAuth() gin.HandlerFunc {
	hash := os.Getenv("SERVICE_KEY_HASH")

	return func(c *gin.Context) {
		if hash == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{
				Code:    utils.CodeInternal,
				Message: "SERVICE_KEY_HASH is not set",
			})
			return
		}

		key := strings.TrimSpace(c.GetHeader("X-Service-Key"))
		if key == "" || utils.CheckServiceKey(hash, key) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "invalid service key",
			})
			return
		}

		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "missing X-User-Id",
			})
			return
		}

		c.Set("user_id", userID)
		c.Set("role", "user")
		c.Next()
	}
}
