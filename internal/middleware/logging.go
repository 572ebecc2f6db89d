package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/courseloom/courseloom-backend/internal/response"
)

// RequestLogger emits one structured log line per request. It runs
// before the token gate but logs after the handler chain, so the
// unverified subject extracted there tags the line when present.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	l := log.With().Str("component", "http").Logger()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := l.Info()
		if status >= 500 {
			event = l.Error()
		}

		if sub := Instructor(c); sub != "" {
			event = event.Str("instructor_id", sub)
		}
		if id, ok := c.Get(response.ContextKeyRequestID); ok {
			if reqID, _ := id.(string); reqID != "" {
				event = event.Str("request_id", reqID)
			}
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}
