package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is:
//   - Logged with full technical details and the request ID (server-side)
//   - Mapped through core.MapError to a message, action and code
//   - Returned in the client's format: a redirect for HTML form posts,
//     JSON for API clients, plain text otherwise
//
// Form posts come from the dashboard, so the redirect carries the code
// back to "/" where the page shows the matching alert.

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/JonMunkholm/CRM/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes the user-facing message in the format
// the request expects.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	switch {
	case isFormPost(r):
		http.Redirect(w, r, "/?"+url.Values{"error": {userMsg.Code}}.Encode(), http.StatusSeeOther)
	case wantsJSON(r):
		writeJSON(w, statusCode, ErrorResponse{
			Error:   userMsg.Message,
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
	default:
		http.Error(w, userMsg.Message+" ("+userMsg.Code+")", statusCode)
	}
}

// statusFor picks the HTTP status for an error returned by the service.
func statusFor(err error) int {
	var unknownCol *core.ErrUnknownColumn
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unknownCol):
		return http.StatusNotFound
	case errors.Is(err, core.ErrEmptyImport):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNotLoaded), errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	}

	code := core.MapError(err).Code
	switch {
	case code == "SRC001":
		return http.StatusBadGateway
	case code == "FILE001":
		return http.StatusRequestEntityTooLarge
	case strings.HasPrefix(code, "REQ"), strings.HasPrefix(code, "FILE"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// isFormPost reports whether r was submitted by an HTML form and the
// client did not ask for JSON.
func isFormPost(r *http.Request) bool {
	if r.Method == http.MethodGet || strings.Contains(r.Header.Get("Accept"), "application/json") {
		return false
	}
	return isFormEncoded(r)
}

func isFormEncoded(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
