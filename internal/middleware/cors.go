package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const corsAllowHeaders = "X-API-Key, X-Request-ID, Content-Type"

// CORS returns middleware that sets Cross-Origin Resource Sharing headers for
// the listed origins, or for any origin when the list contains "*".
//
// Preflights from an allowed origin get 204. A preflight from any other origin
// gets 403, so a browser never reaches the lookup endpoint from an unknown page.
// Requests without an Origin header (curl, server-to-server) pass untouched.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	anyOrigin := false
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			anyOrigin = true
			continue
		}
		originSet[o] = struct{}{}
	}

	allowed := func(origin string) bool {
		if origin == "" {
			return false
		}
		_, ok := originSet[origin]
		return ok || anyOrigin
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		ok := allowed(origin)

		if ok {
			if anyOrigin {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Expose-Headers", HeaderRequestID)
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		if origin != "" && !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "origin not allowed",
			})
			return
		}

		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Header("Access-Control-Max-Age", "86400")
		c.AbortWithStatus(http.StatusNoContent)
	}
}
