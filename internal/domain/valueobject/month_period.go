// Package valueobject defines immutable value objects for the domain layer.
package valueobject

import (
	"fmt"
	"time"
)

const (
	// MinReportYear is the earliest year accepted for monthly reports.
	MinReportYear = 2000
	// MaxReportYear is the latest year accepted for monthly reports.
	MaxReportYear = 2100
)

// MonthPeriod identifies a calendar month of a given year.
type MonthPeriod struct {
	Month int
	Year  int
}

// NewMonthPeriod creates a MonthPeriod after validating its range.
func NewMonthPeriod(month, year int) (MonthPeriod, error) {
	if month < 1 || month > 12 {
		return MonthPeriod{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < MinReportYear || year > MaxReportYear {
		return MonthPeriod{}, fmt.Errorf("year must be between %d and %d, got %d", MinReportYear, MaxReportYear, year)
	}
	return MonthPeriod{Month: month, Year: year}, nil
}

// MonthPeriodOf returns the period containing the given instant, using its calendar fields.
func MonthPeriodOf(t time.Time) MonthPeriod {
	return MonthPeriod{Month: int(t.Month()), Year: t.Year()}
}

// Previous returns the immediately preceding month, rolling January back to December.
func (p MonthPeriod) Previous() MonthPeriod {
	if p.Month == 1 {
		return MonthPeriod{Month: 12, Year: p.Year - 1}
	}
	return MonthPeriod{Month: p.Month - 1, Year: p.Year}
}

// Start returns the first day of the month at 00:00 UTC (inclusive bound).
func (p MonthPeriod) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first day of the following month at 00:00 UTC (exclusive bound).
func (p MonthPeriod) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains reports whether the calendar date of d falls inside the period.
func (p MonthPeriod) Contains(d time.Time) bool {
	return d.Year() == p.Year && int(d.Month()) == p.Month
}

// String formats the period as "M/YYYY".
func (p MonthPeriod) String() string {
	return fmt.Sprintf("%d/%d", p.Month, p.Year)
}

// DateOnly truncates t to its calendar date in t's location and returns that
// date at 00:00 UTC. Expense and recurring dates are stored this way.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b share the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddMonthAnchored advances d to anchorDay of the following month, clamped to
// that month's last day (Jan 31 -> Feb 28, or Feb 29 in leap years). Chained
// calls return to the anchor in long months: Jan 31 -> Feb 28 -> Mar 31.
func AddMonthAnchored(d time.Time, anchorDay int) time.Time {
	y, m, _ := d.Date()
	firstOfTarget := time.Date(y, m+1, 1, 0, 0, 0, 0, d.Location())
	day := anchorDay
	if lastDay := DaysIn(firstOfTarget.Year(), firstOfTarget.Month()); day > lastDay {
		day = lastDay
	}
	h, min, s := d.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, h, min, s, d.Nanosecond(), d.Location())
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
