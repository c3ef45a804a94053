package payroll

import "context"

// Service is the payroll engine surface consumed by the HTTP handler.
type Service interface {
	CalculatePayroll(ctx context.Context, req CalculatePayrollRequest) (CalculatePayrollResponse, error)
	ApplyOverride(ctx context.Context, lineItemID string, req ApplyOverrideRequest) (LineItemResponse, error)
	FinalizeRun(ctx context.Context, runID string) (RunResponse, error)

	GetRun(ctx context.Context, runID string) (RunResponse, error)
	ListRunsByPeriod(ctx context.Context, periodID string) ([]RunResponse, error)
	GetLineItem(ctx context.Context, lineItemID string) (LineItemResponse, error)
	ListLineItemsByRun(ctx context.Context, runID string) ([]LineItemResponse, error)
	ListLineItemsByEmployee(ctx context.Context, employeeID string, year int) ([]LineItemResponse, error)
	GetEmployeeYTD(ctx context.Context, employeeID string, year int) (YTDSummaryResponse, error)
}
