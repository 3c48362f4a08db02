package respond

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-assistant/internal/shared/telemetry"
)

// Error codes shared by every handler.
const (
	CodeValidation      = "validation_error"
	CodePayloadTooLarge = "payload_too_large"
	CodeRateLimited     = "rate_limited"
	CodeInternal        = "internal_error"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error logs the failure and aborts with the error envelope. Browsers posting
// the tailoring forms ask for HTML and get a minimal page with a link back.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if sessionID := c.GetString("sessionId"); sessionID != "" {
		fields["session_id"] = sessionID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		page := fmt.Sprintf("<!doctype html><title>%d</title><p>%s</p><p><a href=\"/tailor\">Back</a></p>",
			status, html.EscapeString(message))
		c.Data(status, "text/html; charset=utf-8", []byte(page))
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadRequest aborts with a validation error.
func BadRequest(c *gin.Context, message string, details any) {
	Error(c, http.StatusBadRequest, CodeValidation, message, details)
}

// TooLarge aborts with 413 and the body limit that was exceeded.
func TooLarge(c *gin.Context, limit int64) {
	Error(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "upload is too large", map[string]any{"limitBytes": limit})
}

// Internal aborts with 500. The message is shown to the caller, so keep
// causes in the logs.
func Internal(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternal, message, nil)
}
