package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. The error is mapped via userMessage (shop.MapError plus web-only errors)
//  3. Technical error + context is logged with request ID for correlation
//  4. User message is rendered in the format the client asked for
//
// Form handlers mostly do not call respondError: rule violations are shown
// inline on the re-rendered form or as a flash after a redirect. It serves
// JSON callers (/quote), media lookups and requests rejected by middleware.

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/groupbuy/internal/logging"
	"github.com/JonMunkholm/groupbuy/internal/shop"
	"github.com/gorilla/csrf"
)

var (
	errRateLimited = errors.New("rate limit exceeded")
	errBadForm     = errors.New("malformed form")
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// userMessage maps err to what the user sees.
func userMessage(err error) shop.UserMessage {
	switch {
	case errors.Is(err, errRateLimited):
		return shop.UserMessage{
			Message: "Too many requests",
			Action:  "Wait a minute and try again",
			Code:    "REQ001",
		}
	case errors.Is(err, errBadForm):
		return shop.UserMessage{
			Message: "The form could not be read",
			Action:  "Reload the page and try again",
			Code:    "REQ002",
		}
	case errors.Is(err, csrf.ErrNoToken), errors.Is(err, csrf.ErrBadToken),
		errors.Is(err, csrf.ErrNoReferer), errors.Is(err, csrf.ErrBadReferer):
		return shop.UserMessage{
			Message: "Your session expired",
			Action:  "Reload the page and submit the form again",
			Code:    "REQ003",
		}
	}
	return shop.MapError(err)
}

// isUserFacing reports whether err is a rejection the user can act on,
// as opposed to a server failure that needs the log.
func isUserFacing(err error) bool {
	switch {
	case errors.Is(err, errRateLimited), errors.Is(err, errBadForm):
		return true
	case errors.Is(err, csrf.ErrNoToken), errors.Is(err, csrf.ErrBadToken),
		errors.Is(err, csrf.ErrNoReferer), errors.Is(err, csrf.ErrBadReferer):
		return true
	}
	return shop.IsUserFacing(err)
}

// flashText renders err as a one-line message for flashes and inline alerts.
func flashText(err error) string {
	msg := userMessage(err)
	return msg.Message + ". " + msg.Action + " (" + msg.Code + ")"
}

// respondError logs the technical error server-side and returns the mapped
// user message as JSON or plain text depending on the request.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := userMessage(err)

	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		writeJSON(w, statusCode, ErrorResponse{
			Error:   userMsg.Message,
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
		return
	}
	http.Error(w, userMsg.Message+" ("+userMsg.Code+")", statusCode)
}

// handleCSRFFailure is the gorilla/csrf error handler.
func (s *Server) handleCSRFFailure(w http.ResponseWriter, r *http.Request) {
	reason := csrf.FailureReason(r)
	if reason == nil {
		reason = csrf.ErrBadToken
	}
	respondError(w, r, reason, http.StatusForbidden)
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return r.URL.Path == "/quote"
}
