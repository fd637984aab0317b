package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

// Error codes carried in the error envelope.
const (
	codeBadRequest       = "BAD_REQUEST"
	codeValidation       = "VALIDATION_ERROR"
	codeSubmissionWindow = "SUBMISSION_WINDOW"
	codeConflict         = "STATE_CONFLICT"
	codeAlreadyExists    = "ALREADY_EXISTS"
	codeForbidden        = "FORBIDDEN"
	codeNotFound         = "NOT_FOUND"
	codeUnauthenticated  = "UNAUTHENTICATED"
	codeInternal         = "INTERNAL"
)

type errorEnvelope struct {
	Error errorResponse `json:"error"`
}

type errorResponse struct {
	Code          string          `json:"code"`
	Message       string          `json:"message"`
	Fields        []fieldResponse `json:"fields,omitempty"`
	Cutoff        *time.Time      `json:"cutoff,omitempty"`
	CurrentStatus string          `json:"currentStatus,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorResponse{Code: code, Message: message}})
}

// writeDomainError maps service errors onto HTTP statuses. Unknown errors are
// logged and hidden behind a 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		verr *domain.ValidationError
		werr *domain.WindowError
		cerr *domain.StateConflictError
		aerr *domain.AuthorizationError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: validationErrorResponse(verr)})
	case errors.As(err, &werr):
		cutoff := werr.Cutoff
		writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: errorResponse{
			Code:    codeSubmissionWindow,
			Message: werr.Reason,
			Cutoff:  &cutoff,
		}})
	case errors.As(err, &cerr):
		writeJSON(w, http.StatusConflict, errorEnvelope{Error: errorResponse{
			Code:          codeConflict,
			Message:       cerr.Error(),
			CurrentStatus: cerr.Current.String(),
		}})
	case errors.As(err, &aerr):
		writeError(w, http.StatusForbidden, codeForbidden, aerr.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, codeAlreadyExists, "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

func validationErrorResponse(verr *domain.ValidationError) errorResponse {
	resp := errorResponse{Code: codeValidation, Message: verr.Error()}
	for _, f := range verr.Errors {
		resp.Fields = append(resp.Fields, fieldResponse{Field: f.Field, Message: f.Message})
	}
	return resp
}

// pathID parses a UUID path parameter, writing 400 on failure.
func pathID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
