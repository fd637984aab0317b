package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/internal/service/delegation"
)

//go:generate moq -out delegation_service_mock_test.go -pkg rest . delegationService

type delegationService interface {
	Create(ctx context.Context, input delegation.CreateInput) (*domain.Delegation, error)
	Revoke(ctx context.Context, id uuid.UUID) (*domain.Delegation, error)
	List(ctx context.Context) (*delegation.Listing, error)
}

// DelegationHandler serves delegation management endpoints.
type DelegationHandler struct {
	svc delegationService
	log *slog.Logger
}

// NewDelegationHandler creates a DelegationHandler.
func NewDelegationHandler(svc delegationService, logger *slog.Logger) *DelegationHandler {
	return &DelegationHandler{svc: svc, log: logger.With("handler", "delegation")}
}

// Routes mounts the handler under /delegations.
func (h *DelegationHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{id}", h.Revoke)
}

// List handles GET /delegations.
func (h *DelegationHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponse(listing))
}

// Create handles POST /delegations.
func (h *DelegationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDelegationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDelegationResponse(d))
}

// Revoke handles DELETE /delegations/{id}.
func (h *DelegationHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if _, err := h.svc.Revoke(r.Context(), id); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
