package payroll

import (
	"strings"

	"github.com/paygrid-hq/payroll-engine-go/internal/domain/employee"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/payroll"
	"github.com/paygrid-hq/payroll-engine-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// EmployeeHours is one employee's aggregated punches for the period. The
// daily entries are kept because shift pay needs each day's first punch-in.
type EmployeeHours struct {
	Total   decimal.Decimal
	Entries []timesheet.Entry
}

// aggregateTimeEntries groups the period's punches per employee. Entries
// carrying a resolved employee id match directly; the rest fall back to a
// normalized-name match against the directory. Entries that match nothing
// become per-employee errors and are excluded without aborting the run.
func aggregateTimeEntries(entries []timesheet.Entry, employees []employee.Employee) (map[string]EmployeeHours, []payroll.RunError) {
	byID := make(map[string]struct{}, len(employees))
	byName := make(map[string]string, len(employees))
	ambiguous := make(map[string]struct{})
	for _, e := range employees {
		byID[e.ID] = struct{}{}
		key := normalizeName(e.FullName)
		if _, taken := byName[key]; taken {
			ambiguous[key] = struct{}{}
			continue
		}
		byName[key] = e.ID
	}

	hours := make(map[string]EmployeeHours)
	var errs []payroll.RunError
	reported := make(map[string]struct{})

	for _, entry := range entries {
		id, ref, ok := resolveEntry(entry, byID, byName, ambiguous)
		if !ok {
			if _, seen := reported[ref]; !seen {
				reported[ref] = struct{}{}
				errs = append(errs, payroll.RunError{
					EmployeeRef: ref,
					Stage:       payroll.StageTimeAggregation,
					Message:     "time entry could not be matched to an employee",
				})
			}
			continue
		}

		agg := hours[id]
		agg.Total = agg.Total.Add(entry.Duration)
		agg.Entries = append(agg.Entries, entry)
		hours[id] = agg
	}

	return hours, errs
}

func resolveEntry(entry timesheet.Entry, byID map[string]struct{}, byName map[string]string, ambiguous map[string]struct{}) (id, ref string, ok bool) {
	if entry.EmployeeID != nil {
		if _, exists := byID[*entry.EmployeeID]; exists {
			return *entry.EmployeeID, *entry.EmployeeID, true
		}
		return "", *entry.EmployeeID, false
	}

	key := normalizeName(entry.EmployeeName)
	if key == "" {
		return "", entry.EmployeeName, false
	}
	if _, dup := ambiguous[key]; dup {
		return "", entry.EmployeeName, false
	}
	if matched, exists := byName[key]; exists {
		return matched, entry.EmployeeName, true
	}
	return "", entry.EmployeeName, false
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "")
}
