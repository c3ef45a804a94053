package absence

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryStatus string

const (
	StatusPending  EntryStatus = "pending"
	StatusApproved EntryStatus = "approved"
	StatusRejected EntryStatus = "rejected"
)

// VacationEntry covers a date range with a fixed number of hours. Hours are
// credited in full when the range overlaps the pay period, even if the
// range extends past the period edges.
type VacationEntry struct {
	ID                 string
	EmployeeID         string
	StartDate          time.Time
	EndDate            time.Time
	Hours              decimal.Decimal
	HourlyRateOverride *decimal.Decimal
	Status             EntryStatus
	CreatedAt          time.Time
}

// LeaveEntry is paid at PaymentPercentage of the employee's equivalent
// hourly rate (or the entry's override rate).
type LeaveEntry struct {
	ID                 string
	EmployeeID         string
	StartDate          time.Time
	EndDate            time.Time
	Hours              decimal.Decimal
	HourlyRateOverride *decimal.Decimal
	PaymentPercentage  decimal.Decimal // 0..1
	Status             EntryStatus
	CreatedAt          time.Time
}

type PublicHoliday struct {
	ID   string
	Name string
	Date time.Time
	Paid bool
}

// Overlaps reports whether [start, end] intersects the pay period. The
// test covers fully-inside, spans-start and spans-end ranges.
func Overlaps(start, end, periodStart, periodEnd time.Time) bool {
	return !start.After(periodEnd) && !end.Before(periodStart)
}
