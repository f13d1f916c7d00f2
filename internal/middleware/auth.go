// Package middleware contains Gin middleware for the company lookup API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyAPIKey is where the caller identity is stored for downstream middleware.
const ContextKeyAPIKey = "api_key"

// APIKeyAuth returns middleware that validates API keys sent via the X-API-Key
// header or the api_key query param.
//
// With no keys configured the API is open; the client IP then stands in for the
// key so rate limiting still has something to bucket on.
func APIKeyAuth(validKeys []string) gin.HandlerFunc {
	keySet := make(map[string]struct{}, len(validKeys))
	for _, k := range validKeys {
		keySet[k] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(keySet) == 0 {
			c.Set(ContextKeyAPIKey, "ip:"+c.ClientIP())
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = c.Query("api_key")
		}

		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing API key",
			})
			return
		}

		if _, ok := keySet[key]; !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid API key",
			})
			return
		}

		c.Set(ContextKeyAPIKey, key)
		c.Next()
	}
}
