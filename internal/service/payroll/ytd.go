package payroll

import (
	"context"
	"fmt"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
)

// accumulateYTD stamps the running calendar-year totals onto the line item
// and refreshes the denormalized per-employee summary. Prior totals come
// from every posted line item of the year excluding the run in flight, so
// re-running a period never double-counts itself.
func (s *PayrollServiceImpl) accumulateYTD(ctx context.Context, item *payroll.LineItem, year int) error {
	prior, err := s.payrolls.SumPostedYTD(ctx, item.EmployeeID, year, item.RunID)
	if err != nil {
		return fmt.Errorf("failed to load prior year-to-date totals: %w", err)
	}

	totals := prior.Add(payroll.YTDTotals{
		Gross:      item.GrossPay,
		Social:     item.SocialEmployee,
		Health:     item.HealthEmployee,
		Levy:       item.IncomeLevy,
		LoanRepaid: item.TotalLoanDeduction(),
		Net:        item.NetPay,
	})

	item.YTDGross = totals.Gross
	item.YTDSocial = totals.Social
	item.YTDHealth = totals.Health
	item.YTDLevy = totals.Levy
	item.YTDNet = totals.Net

	err = s.payrolls.UpsertYTDSummary(ctx, payroll.YTDSummary{
		EmployeeID: item.EmployeeID,
		Year:       year,
		Totals:     totals,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert year-to-date summary: %w", err)
	}

	return nil
}
