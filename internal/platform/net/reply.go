package net

import (
	"encoding/json"
	"net/http"

	perr "marketbrowse/internal/platform/errors"
)

// Envelope is the body of every API response
// Data is set on success, Code, Error and Field on failure
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Problem maps err to its status and envelope
func Problem(err error, reqID string) (int, Envelope) {
	status, w := perr.HTTP(err)
	return status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		Field:      w.Field,
		RequestID:  reqID,
	}
}

// WriteJSON writes v with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the envelope for err, used by middleware that answers before a handler runs
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := Problem(err, RequestID(r.Context()))
	WriteJSON(w, status, env)
}
