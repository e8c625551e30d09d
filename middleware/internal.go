package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InternalAuth requires the shared X-API-Key header on service-to-service
// calls. An empty configured key disables the check (local development).
func InternalAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey != "" && c.Request.Header.Get("X-API-Key") != apiKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
