package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
)

// GetStatutorySettings loads the single active settings row. Every run
// reads it fresh; rates are never cached across runs.
func (r *payrollRepository) GetStatutorySettings(ctx context.Context) (payroll.StatutorySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT social_employee_rate, social_employer_rate, social_monthly_cap, retirement_age,
			   health_employee_rate, health_employer_rate, health_senior_rate, senior_age, health_max_age,
			   levy_standard_rate, levy_higher_rate, levy_exemption, levy_threshold,
			   holiday_pay_enabled, day_shift_start_hour, day_shift_end_hour,
			   shift_weekday_day_rate, shift_weekday_night_rate,
			   shift_weekend_day_rate, shift_weekend_night_rate
		FROM payroll_statutory_settings
		WHERE active = true
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var s payroll.StatutorySettings
	err := q.QueryRow(ctx, query).Scan(
		&s.SocialEmployeeRate, &s.SocialEmployerRate, &s.SocialMonthlyCap, &s.RetirementAge,
		&s.HealthEmployeeRate, &s.HealthEmployerRate, &s.HealthSeniorRate, &s.SeniorAge, &s.HealthMaxAge,
		&s.LevyStandardRate, &s.LevyHigherRate, &s.LevyExemption, &s.LevyThreshold,
		&s.HolidayPayEnabled, &s.DayShiftStartHour, &s.DayShiftEndHour,
		&s.ShiftWeekdayDayRate, &s.ShiftWeekdayNightRate,
		&s.ShiftWeekendDayRate, &s.ShiftWeekendNightRate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.StatutorySettings{}, payroll.ErrStatutorySettingsNotFound
		}
		return payroll.StatutorySettings{}, fmt.Errorf("failed to get statutory settings: %w", err)
	}

	return s, nil
}
