package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// PrivateCache marks responses as cacheable by the browser only, for the
// given number of seconds. Instructor data is per-token, so shared caches
// must never hold it.
func PrivateCache(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", maxAgeSeconds))
		c.Next()
	}
}
