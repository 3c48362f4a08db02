package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"job-assistant/internal/shared/telemetry"
)

// Logging emits one request.complete line per request. Server errors log at
// error level and client errors at warn; preflights and health checks are skipped.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if sessionID := SessionIDFromContext(c); sessionID != "" {
			fields["session_id"] = sessionID
		}
		if transition := c.GetString(transitionKey); transition != "" {
			fields["state_transition"] = transition
		}
		if cache := c.Writer.Header().Get("X-Analysis-Cache"); cache != "" {
			fields["analysis_cache"] = cache
		}

		switch {
		case status >= http.StatusInternalServerError:
			telemetry.Error("request.complete", fields)
		case status >= http.StatusBadRequest:
			telemetry.Warn("request.complete", fields)
		default:
			telemetry.Info("request.complete", fields)
		}
	}
}
