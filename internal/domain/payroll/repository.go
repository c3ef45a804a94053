package payroll

import (
	"context"
	"time"
)

// Repository defines data access for runs, line items, YTD aggregates,
// override audit and statutory settings. Mutating methods participate in
// the run's transaction via the querier carried in ctx.
type Repository interface {
	// Settings
	GetStatutorySettings(ctx context.Context) (StatutorySettings, error)

	// Runs
	CreateRun(ctx context.Context, run Run) (Run, error)
	GetRunByID(ctx context.Context, id string) (Run, error)
	ListRunsByPeriod(ctx context.Context, periodID string) ([]Run, error)
	UpdateRunTotals(ctx context.Context, run Run) error
	FinalizeRun(ctx context.Context, id string, finalizedAt time.Time) error

	// Line items
	CreateLineItem(ctx context.Context, item LineItem) (LineItem, error)
	FinishLineItem(ctx context.Context, item LineItem) error
	GetLineItemByID(ctx context.Context, id string) (LineItem, error)
	ListLineItemsByRun(ctx context.Context, runID string) ([]LineItem, error)
	ListLineItemsByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LineItem, error)
	ApplyOverride(ctx context.Context, item LineItem, audit OverrideAudit) error

	// YTD
	SumPostedYTD(ctx context.Context, employeeID string, year int, excludeRunID string) (YTDTotals, error)
	UpsertYTDSummary(ctx context.Context, summary YTDSummary) error
	GetYTDSummary(ctx context.Context, employeeID string, year int) (YTDSummary, error)
}
