package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

// Anomaly flags an approval that the same actor unlocked again shortly after.
type Anomaly struct {
	ActorID    uuid.UUID
	ApprovedAt time.Time
	UnlockedAt time.Time
	ApprovalID uuid.UUID
	UnlockID   uuid.UUID
}

// Gap is the time between the approval and the unlock.
func (a Anomaly) Gap() time.Duration {
	return a.UnlockedAt.Sub(a.ApprovedAt)
}

// DetectAnomalies scans chronological entries for an APPROVED followed by an
// UNLOCKED by the same actor within window. Each unlock pairs with the most
// recent approval before it.
func DetectAnomalies(entries []domain.AuditLogEntry, window time.Duration) []Anomaly {
	var (
		out          []Anomaly
		lastApproval *domain.AuditLogEntry
	)

	for i := range entries {
		e := &entries[i]
		switch e.Action {
		case domain.AuditActionApproved:
			lastApproval = e
		case domain.AuditActionUnlocked:
			if lastApproval == nil {
				continue
			}
			gap := e.ActionAt.Sub(lastApproval.ActionAt)
			if lastApproval.ActionBy == e.ActionBy && gap >= 0 && gap <= window {
				out = append(out, Anomaly{
					ActorID:    e.ActionBy,
					ApprovedAt: lastApproval.ActionAt,
					UnlockedAt: e.ActionAt,
					ApprovalID: lastApproval.ID,
					UnlockID:   e.ID,
				})
			}
			lastApproval = nil
		}
	}
	return out
}
