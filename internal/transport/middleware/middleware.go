// Package middleware holds the HTTP middleware shared by every route: request
// ids, panic recovery, CORS, principal extraction, access logging and rate
// limiting.
package middleware

import (
	"encoding/json"
	"net/http"
)

// Middleware wraps an http.Handler. It matches chi's Use signature.
type Middleware func(http.Handler) http.Handler

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes the same error envelope the REST handlers use.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorPayload{Code: code, Message: message}})
}
