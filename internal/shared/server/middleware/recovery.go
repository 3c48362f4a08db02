package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"job-assistant/internal/shared/server/respond"
	"job-assistant/internal/shared/telemetry"
)

// Recovery turns a panic into a 500 for the caller and one log line with the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
				"path":       c.FullPath(),
				"method":     c.Request.Method,
			}
			if sessionID := SessionIDFromContext(c); sessionID != "" {
				fields["session_id"] = sessionID
			}
			telemetry.Error("panic", fields)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Internal(c, "Unexpected server error")
		}()
		c.Next()
	}
}
