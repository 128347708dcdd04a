package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sasikumar272004/ConnecTree-sub000/config"
)

func originAllowed(origin string) bool {
	for _, allowed := range config.App.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func wildcardOrigins() bool {
	for _, allowed := range config.App.AllowedOrigins {
		if allowed == "*" {
			return true
		}
	}
	return false
}

// CORS reflects only allow-listed origins back to the browser. Credentials
// are only ever allowed for a named origin, never under the "*" wildcard.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if !originAllowed(origin) {
				if c.Request.Method == http.MethodOptions {
					c.AbortWithStatus(http.StatusForbidden)
					return
				}
				// no CORS headers; the browser blocks the cross-origin read
				c.Next()
				return
			}

			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if !wildcardOrigins() {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
