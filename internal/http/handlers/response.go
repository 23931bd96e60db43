// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints,
// including structured error envelopes, consistent JSON serialization, and
// helpers for common HTTP patterns. The goal is to guarantee uniform responses
// for both success and failure cases, making the API predictable and
// machine-friendly.
//
// Conventions:
//   - All error responses must return an ErrorResponse with a stable `code`.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx responses
//     are logged with request context for observability.
//   - `failValidation()` renders schema rejections as a 422 with the full
//     field-error list so clients can mark up forms field by field.
//   - `ok()` and `noContent()` simplify writing success responses in a
//     consistent shape across handlers.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "resource not found"
//	}
//
// Example validation response:
//
//	HTTP/1.1 422 Unprocessable Entity
//	{
//	  "request_id": "…",
//	  "code": "validation_failed",
//	  "message": "request body failed validation",
//	  "errors": [ { "field": "rating", "rule": "max", "message": "…" } ]
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegeantours/go-guide-backend/internal/http/middleware"
	"github.com/aegeantours/go-guide-backend/internal/schema"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: Optional correlation ID, echoed from X-Request-ID header, used
//     to correlate server logs with client-side errors.
//   - Code: A stable, machine-readable string (see errors.go constants).
//   - Message: A human-readable error description, safe for display to users.
//   - Errors: Present only on validation failures; one entry per offending
//     field, addressed by its JSON path (e.g. "customShifts[0].endTime").
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"resource not found"`
	// Per-field validation errors (422 only)
	Errors []schema.FieldError `json:"errors,omitempty"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// It constructs an ErrorResponse, writes it as JSON with the given HTTP status,
// and calls gin.Context.AbortWithStatusJSON to stop further processing.
//
// Server errors (>=500) are logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failValidation aborts the request with 422 and the full list of field
// errors produced by the schema layer.
func failValidation(c *gin.Context, errs schema.Errors) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      ErrCodeValidation,
		Message:   "request body failed validation",
		Errors:    errs,
	})
}

// ok writes a success JSON response.
//
// It serializes `body` as JSON with the given HTTP status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
//
// Used when the operation succeeds but there is no response body.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
