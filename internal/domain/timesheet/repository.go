package timesheet

import "context"

type Repository interface {
	GetPeriodByID(ctx context.Context, id string) (Period, error)
	ListEntriesByPeriod(ctx context.Context, periodID string) ([]Entry, error)
}
