package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/internal/service/approval"
	"github.com/heartmarshall/timesheets-backend/internal/service/audit"
	"github.com/heartmarshall/timesheets-backend/internal/service/delegation"
	"github.com/heartmarshall/timesheets-backend/internal/service/timesheet"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type weekRequest struct {
	WeekStartDate string `json:"weekStartDate" validate:"required,datetime=2006-01-02"`
}

type entryRequest struct {
	ProjectID    string          `json:"projectId"    validate:"required,uuid"`
	WorkDate     string          `json:"workDate"     validate:"required,datetime=2006-01-02"`
	Hours        decimal.Decimal `json:"hours"`
	WorkLocation string          `json:"workLocation" validate:"omitempty,oneof=OFFICE WFH OTHER"`
	Notes        *string         `json:"notes"        validate:"omitempty,max=500"`
}

type replaceEntriesRequest struct {
	Entries []entryRequest `json:"entries" validate:"dive"`
}

func (r replaceEntriesRequest) toInputs() []timesheet.EntryInput {
	inputs := make([]timesheet.EntryInput, 0, len(r.Entries))
	for _, e := range r.Entries {
		// Format already checked by the validator.
		workDate, _ := domain.ParseDate(e.WorkDate)
		inputs = append(inputs, timesheet.EntryInput{
			ProjectID:    uuid.MustParse(e.ProjectID),
			WorkDate:     workDate,
			Hours:        e.Hours,
			WorkLocation: domain.WorkLocation(e.WorkLocation),
			Notes:        e.Notes,
		})
	}
	return inputs
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type createDelegationRequest struct {
	DelegateUserID string   `json:"delegateUserId" validate:"required,uuid"`
	StartDate      string   `json:"startDate"      validate:"required,datetime=2006-01-02"`
	EndDate        string   `json:"endDate"        validate:"required,datetime=2006-01-02"`
	Reason         *string  `json:"reason"`
	EmployeeIDs    []string `json:"employeeIds"    validate:"dive,uuid"`
}

func (r createDelegationRequest) toInput() delegation.CreateInput {
	start, _ := domain.ParseDate(r.StartDate)
	end, _ := domain.ParseDate(r.EndDate)
	in := delegation.CreateInput{
		DelegateUserID: uuid.MustParse(r.DelegateUserID),
		StartDate:      start,
		EndDate:        end,
		Reason:         r.Reason,
	}
	for _, id := range r.EmployeeIDs {
		in.EmployeeIDs = append(in.EmployeeIDs, uuid.MustParse(id))
	}
	return in
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type timesheetResponse struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	PeriodStart   string          `json:"periodStart"`
	PeriodEnd     string          `json:"periodEnd"`
	Status        string          `json:"status"`
	IsLocked      bool            `json:"isLocked"`
	SubmittedAt   *time.Time      `json:"submittedAt,omitempty"`
	ApprovedAt    *time.Time      `json:"approvedAt,omitempty"`
	ApprovedBy    *uuid.UUID      `json:"approvedBy,omitempty"`
	ReturnReason  *string         `json:"returnReason,omitempty"`
	ImportBatchID *string         `json:"importBatchId,omitempty"`
	TotalHours    decimal.Decimal `json:"totalHours"`
	Entries       []entryResponse `json:"entries"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type entryResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProjectID    uuid.UUID       `json:"projectId"`
	WorkDate     string          `json:"workDate"`
	Hours        decimal.Decimal `json:"hours"`
	WorkLocation string          `json:"workLocation"`
	Notes        *string         `json:"notes,omitempty"`
}

func toTimesheetResponse(ts *domain.Timesheet) timesheetResponse {
	resp := timesheetResponse{
		ID:            ts.ID,
		UserID:        ts.UserID,
		PeriodStart:   ts.PeriodStart.Format(time.DateOnly),
		PeriodEnd:     ts.PeriodEnd.Format(time.DateOnly),
		Status:        ts.Status.String(),
		IsLocked:      ts.IsLocked,
		SubmittedAt:   ts.SubmittedAt,
		ApprovedAt:    ts.ApprovedAt,
		ApprovedBy:    ts.ApprovedBy,
		ReturnReason:  ts.ReturnReason,
		ImportBatchID: ts.ImportBatchID,
		TotalHours:    ts.TotalHours(),
		Entries:       make([]entryResponse, 0, len(ts.Entries)),
		CreatedAt:     ts.CreatedAt,
		UpdatedAt:     ts.UpdatedAt,
	}
	for _, e := range ts.Entries {
		resp.Entries = append(resp.Entries, entryResponse{
			ID:           e.ID,
			ProjectID:    e.ProjectID,
			WorkDate:     e.WorkDate.Format(time.DateOnly),
			Hours:        e.Hours,
			WorkLocation: e.WorkLocation.String(),
			Notes:        e.Notes,
		})
	}
	return resp
}

type historyResponse struct {
	Entries   []auditEntryResponse `json:"entries"`
	Anomalies []anomalyResponse    `json:"anomalies"`
}

type auditEntryResponse struct {
	ID             uuid.UUID `json:"id"`
	Action         string    `json:"action"`
	ActionBy       uuid.UUID `json:"actionBy"`
	ActionAt       time.Time `json:"actionAt"`
	PreviousStatus *string   `json:"previousStatus,omitempty"`
	NewStatus      string    `json:"newStatus"`
	Notes          *string   `json:"notes,omitempty"`
}

type anomalyResponse struct {
	ActorID    uuid.UUID `json:"actorId"`
	ApprovalID uuid.UUID `json:"approvalId"`
	UnlockID   uuid.UUID `json:"unlockId"`
	ApprovedAt time.Time `json:"approvedAt"`
	UnlockedAt time.Time `json:"unlockedAt"`
	Gap        string    `json:"gap"`
}

func toHistoryResponse(h *timesheet.History) historyResponse {
	resp := historyResponse{
		Entries:   make([]auditEntryResponse, 0, len(h.Entries)),
		Anomalies: make([]anomalyResponse, 0, len(h.Anomalies)),
	}
	for _, e := range h.Entries {
		item := auditEntryResponse{
			ID:        e.ID,
			Action:    e.Action.String(),
			ActionBy:  e.ActionBy,
			ActionAt:  e.ActionAt,
			NewStatus: e.NewStatus.String(),
			Notes:     e.Notes,
		}
		if e.PreviousStatus != nil {
			prev := e.PreviousStatus.String()
			item.PreviousStatus = &prev
		}
		resp.Entries = append(resp.Entries, item)
	}
	for _, a := range h.Anomalies {
		resp.Anomalies = append(resp.Anomalies, toAnomalyResponse(a))
	}
	return resp
}

func toAnomalyResponse(a audit.Anomaly) anomalyResponse {
	return anomalyResponse{
		ActorID:    a.ActorID,
		ApprovalID: a.ApprovalID,
		UnlockID:   a.UnlockID,
		ApprovedAt: a.ApprovedAt,
		UnlockedAt: a.UnlockedAt,
		Gap:        a.Gap().String(),
	}
}

type queueItemResponse struct {
	Timesheet   timesheetResponse `json:"timesheet"`
	DaysWaiting int               `json:"daysWaiting"`
	RAG         string            `json:"rag"`
	OnBehalfOf  *uuid.UUID        `json:"onBehalfOf,omitempty"`
}

func toQueueResponse(items []approval.QueueItem) []queueItemResponse {
	resp := make([]queueItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, queueItemResponse{
			Timesheet:   toTimesheetResponse(&items[i].Timesheet),
			DaysWaiting: items[i].DaysWaiting,
			RAG:         items[i].RAG.String(),
			OnBehalfOf:  items[i].OnBehalfOf,
		})
	}
	return resp
}

type delegationResponse struct {
	ID          uuid.UUID   `json:"id"`
	DelegatorID uuid.UUID   `json:"delegatorId"`
	DelegateID  uuid.UUID   `json:"delegateId"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	Reason      *string     `json:"reason,omitempty"`
	IsActive    bool        `json:"isActive"`
	EmployeeIDs []uuid.UUID `json:"employeeIds"`
	CreatedAt   time.Time   `json:"createdAt"`
	RevokedAt   *time.Time  `json:"revokedAt,omitempty"`
}

func toDelegationResponse(d *domain.Delegation) delegationResponse {
	ids := d.ScopedEmployeeIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return delegationResponse{
		ID:          d.ID,
		DelegatorID: d.DelegatorID,
		DelegateID:  d.DelegateID,
		StartDate:   d.StartDate.Format(time.DateOnly),
		EndDate:     d.EndDate.Format(time.DateOnly),
		Reason:      d.Reason,
		IsActive:    d.IsActive,
		EmployeeIDs: ids,
		CreatedAt:   d.CreatedAt,
		RevokedAt:   d.RevokedAt,
	}
}

type listingResponse struct {
	Granted  []delegationResponse `json:"granted"`
	Received []delegationResponse `json:"received"`
}

func toListingResponse(l *delegation.Listing) listingResponse {
	resp := listingResponse{
		Granted:  make([]delegationResponse, 0, len(l.Granted)),
		Received: make([]delegationResponse, 0, len(l.Received)),
	}
	for i := range l.Granted {
		resp.Granted = append(resp.Granted, toDelegationResponse(&l.Granted[i]))
	}
	for i := range l.Received {
		resp.Received = append(resp.Received, toDelegationResponse(&l.Received[i]))
	}
	return resp
}
