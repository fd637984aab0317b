package timesheet

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

func scanTimesheet(row pgx.Row) (*domain.Timesheet, error) {
	var (
		ts     domain.Timesheet
		status string
	)
	err := row.Scan(
		&ts.ID, &ts.UserID, &ts.PeriodStart, &ts.PeriodEnd, &status, &ts.IsLocked,
		&ts.SubmittedAt, &ts.ApprovedAt, &ts.ApprovedBy, &ts.ReturnReason, &ts.ImportBatchID,
		&ts.CreatedAt, &ts.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ts.Status = domain.TimesheetStatus(status)
	if err := ts.CheckState(); err != nil {
		return nil, err
	}
	return &ts, nil
}

func scanEntry(row pgx.CollectableRow) (domain.TimeEntry, error) {
	var (
		e               domain.TimeEntry
		hours, location string
	)
	if err := row.Scan(&e.ID, &e.TimesheetID, &e.ProjectID, &e.WorkDate, &hours, &location, &e.Notes, &e.CreatedAt); err != nil {
		return domain.TimeEntry{}, err
	}
	h, err := decimal.NewFromString(hours)
	if err != nil {
		return domain.TimeEntry{}, fmt.Errorf("time_entry %s: parse hours %q: %w", e.ID, hours, err)
	}
	e.Hours = h
	e.WorkLocation = domain.WorkLocation(location)
	return e, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
