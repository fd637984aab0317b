package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/internal/service/timesheet"
)

//go:generate moq -out timesheet_service_mock_test.go -pkg rest . timesheetService

type timesheetService interface {
	GetOrCreateWeek(ctx context.Context, weekStart time.Time) (*domain.Timesheet, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	History(ctx context.Context, id uuid.UUID) (*timesheet.History, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
	ReplaceEntries(ctx context.Context, id uuid.UUID, inputs []timesheet.EntryInput) (*domain.Timesheet, error)
	Submit(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	Withdraw(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	Approve(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	Return(ctx context.Context, id uuid.UUID, reason string) (*domain.Timesheet, error)
	Unlock(ctx context.Context, id uuid.UUID, reason string) (*domain.Timesheet, error)
}

// TimesheetHandler serves the timesheet lifecycle endpoints.
type TimesheetHandler struct {
	svc timesheetService
	log *slog.Logger
}

// NewTimesheetHandler creates a TimesheetHandler.
func NewTimesheetHandler(svc timesheetService, logger *slog.Logger) *TimesheetHandler {
	return &TimesheetHandler{svc: svc, log: logger.With("handler", "timesheet")}
}

// Routes mounts the handler under /timesheets.
func (h *TimesheetHandler) Routes(r chi.Router) {
	r.Post("/week", h.Week)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.ReplaceEntries)
		r.Delete("/", h.Delete)
		r.Get("/audit", h.History)
		r.Post("/submit", h.transition(h.svc.Submit))
		r.Post("/withdraw", h.transition(h.svc.Withdraw))
		r.Post("/approve", h.transition(h.svc.Approve))
		r.Post("/return", h.withReason(h.svc.Return))
		r.Post("/unlock", h.withReason(h.svc.Unlock))
	})
}

// Week handles POST /timesheets/week.
func (h *TimesheetHandler) Week(w http.ResponseWriter, r *http.Request) {
	var req weekRequest
	if !decodeBody(w, r, &req) {
		return
	}
	weekStart, err := domain.ParseDate(req.WeekStartDate)
	if err != nil {
		writeDomainError(w, r, h.log, domain.NewValidationError("weekStartDate", err.Error()))
		return
	}

	ts, err := h.svc.GetOrCreateWeek(r.Context(), weekStart)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTimesheetResponse(ts))
}

// Get handles GET /timesheets/{id}.
func (h *TimesheetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	ts, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTimesheetResponse(ts))
}

// ReplaceEntries handles PUT /timesheets/{id}.
func (h *TimesheetHandler) ReplaceEntries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req replaceEntriesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ts, err := h.svc.ReplaceEntries(r.Context(), id, req.toInputs())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTimesheetResponse(ts))
}

// Delete handles DELETE /timesheets/{id}.
func (h *TimesheetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := h.svc.DeleteDraft(r.Context(), id); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// History handles GET /timesheets/{id}/audit.
func (h *TimesheetHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	hist, err := h.svc.History(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toHistoryResponse(hist))
}

func (h *TimesheetHandler) transition(
	op func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}
		ts, err := op(r.Context(), id)
		if err != nil {
			writeDomainError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toTimesheetResponse(ts))
	}
}

func (h *TimesheetHandler) withReason(
	op func(ctx context.Context, id uuid.UUID, reason string) (*domain.Timesheet, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, chi.URLParam(r, "id"))
		if !ok {
			return
		}
		var req reasonRequest
		if !decodeBody(w, r, &req) {
			return
		}
		ts, err := op(r.Context(), id, req.Reason)
		if err != nil {
			writeDomainError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toTimesheetResponse(ts))
	}
}
