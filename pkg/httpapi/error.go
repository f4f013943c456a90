package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorDetail is the machine-readable part of an API error: a stable code for
// clients to branch on, a human-readable message, and optional context.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// ErrorEnvelope wraps every JSON error response under an "error" key, keeping
// error payloads distinguishable from resource payloads at a glance.
type ErrorEnvelope struct {
	Error ErrorDetail `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Meta:    meta,
		},
	})
}

// NotFoundHandler is the JSON fallback for unrouted paths.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = WriteError(w, http.StatusNotFound, "NOT_FOUND", "not found", map[string]string{
			"path": r.URL.Path,
		})
	})
}

// MethodNotAllowedHandler is the JSON fallback for routed paths hit with an
// unsupported method.
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", map[string]string{
			"path":   r.URL.Path,
			"method": r.Method,
		})
	})
}
