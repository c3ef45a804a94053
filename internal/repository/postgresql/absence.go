package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/absence"
	"github.com/paygrid-hq/payroll-engine-go/internal/pkg/database"
)

type absenceRepository struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) absence.Repository {
	return &absenceRepository{db: db}
}

func (r *absenceRepository) ListApprovedVacations(ctx context.Context, employeeID string, start, end time.Time) ([]absence.VacationEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, hours, hourly_rate_override, status, created_at
		FROM vacation_entries
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date <= $3
		  AND end_date >= $4
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, absence.StatusApproved, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacation entries: %w", err)
	}
	defer rows.Close()

	var entries []absence.VacationEntry
	for rows.Next() {
		var e absence.VacationEntry
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.StartDate, &e.EndDate, &e.Hours,
			&e.HourlyRateOverride, &e.Status, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vacation entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *absenceRepository) ListApprovedLeaves(ctx context.Context, employeeID string, start, end time.Time) ([]absence.LeaveEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, hours, hourly_rate_override,
			   payment_percentage, status, created_at
		FROM leave_entries
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date <= $3
		  AND end_date >= $4
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, absence.StatusApproved, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave entries: %w", err)
	}
	defer rows.Close()

	var entries []absence.LeaveEntry
	for rows.Next() {
		var e absence.LeaveEntry
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.StartDate, &e.EndDate, &e.Hours,
			&e.HourlyRateOverride, &e.PaymentPercentage, &e.Status, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *absenceRepository) ListHolidays(ctx context.Context, start, end time.Time) ([]absence.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, holiday_date, is_paid
		FROM public_holidays
		WHERE holiday_date >= $1 AND holiday_date <= $2
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	defer rows.Close()

	var holidays []absence.PublicHoliday
	for rows.Next() {
		var h absence.PublicHoliday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan public holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}
