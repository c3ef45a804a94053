package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is one timesheet period as created by the ingestion collaborator.
type Period struct {
	ID        string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// Entry is one normalized punch pair. EmployeeID is nil when the ingestion
// step could not resolve the employee; EmployeeName then carries the raw
// name for the aggregator's degraded-match fallback.
type Entry struct {
	ID           string
	PeriodID     string
	EmployeeID   *string
	EmployeeName string
	WorkDate     time.Time
	TimeIn       time.Time
	TimeOut      time.Time
	Duration     decimal.Decimal // hours
	CreatedAt    time.Time
}
