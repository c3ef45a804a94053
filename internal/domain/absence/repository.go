package absence

import (
	"context"
	"time"
)

// Repository lists approved entries whose date range overlaps [start, end],
// plus the calendar holidays inside that window.
type Repository interface {
	ListApprovedVacations(ctx context.Context, employeeID string, start, end time.Time) ([]VacationEntry, error)
	ListApprovedLeaves(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveEntry, error)
	ListHolidays(ctx context.Context, start, end time.Time) ([]PublicHoliday, error)
}
