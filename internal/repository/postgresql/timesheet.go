package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/timesheet"
	"github.com/paygrid-hq/payroll-engine-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

func (r *timesheetRepository) GetPeriodByID(ctx context.Context, id string) (timesheet.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, start_date, end_date, created_at
		FROM timesheet_periods
		WHERE id = $1
	`

	var p timesheet.Period
	err := q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.StartDate, &p.EndDate, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Period{}, timesheet.ErrPeriodNotFound
		}
		return timesheet.Period{}, fmt.Errorf("failed to get timesheet period: %w", err)
	}

	return p, nil
}

func (r *timesheetRepository) ListEntriesByPeriod(ctx context.Context, periodID string) ([]timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, period_id, employee_id, employee_name, work_date,
			   time_in, time_out, duration_hours, created_at
		FROM time_entries
		WHERE period_id = $1
		ORDER BY work_date, time_in
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.Entry
	for rows.Next() {
		var e timesheet.Entry
		if err := rows.Scan(
			&e.ID, &e.PeriodID, &e.EmployeeID, &e.EmployeeName, &e.WorkDate,
			&e.TimeIn, &e.TimeOut, &e.Duration, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
