package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/internal/service/approval"
)

//go:generate moq -out approval_service_mock_test.go -pkg rest . approvalService

type approvalService interface {
	ListPending(ctx context.Context) ([]approval.QueueItem, error)
}

// ApprovalHandler serves the approver's queue.
type ApprovalHandler struct {
	svc approvalService
	log *slog.Logger
}

// NewApprovalHandler creates an ApprovalHandler.
func NewApprovalHandler(svc approvalService, logger *slog.Logger) *ApprovalHandler {
	return &ApprovalHandler{svc: svc, log: logger.With("handler", "approval")}
}

// Queue handles GET /approvals?status=SUBMITTED. Only submitted timesheets
// are ever pending, so any other status filter is rejected.
func (h *ApprovalHandler) Queue(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" && status != domain.TimesheetStatusSubmitted.String() {
		writeDomainError(w, r, h.log, domain.NewValidationError("status", "only SUBMITTED is supported"))
		return
	}

	items, err := h.svc.ListPending(r.Context())
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toQueueResponse(items))
}
