package models

import (
	"fmt"
	"time"
)

// LedgerEpoch is the lower bound used for open-ended "until" queries
var LedgerEpoch = Day(1900, time.January, 1)

// Day returns midnight UTC of the given calendar date. Ledger dates carry no
// time-of-day semantics.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDay drops the time-of-day part of t, keeping its calendar date
func TruncateDay(t time.Time) time.Time {
	return Day(t.Year(), t.Month(), t.Day())
}

// Period is a calendar month
type Period struct {
	Month time.Month
	Year  int
}

// NewPeriod validates a month (1-12) and year
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("month %d: %w", month, ErrInvalidPeriod)
	}
	if year < 1 || year > 9999 {
		return Period{}, fmt.Errorf("year %d: %w", year, ErrInvalidPeriod)
	}
	return Period{Month: time.Month(month), Year: year}, nil
}

// PeriodOf returns the period containing t
func PeriodOf(t time.Time) Period {
	return Period{Month: t.Month(), Year: t.Year()}
}

// Start returns the first day of the period
func (p Period) Start() time.Time {
	return Day(p.Year, p.Month, 1)
}

// End returns the last day of the period
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Previous returns the period before p
func (p Period) Previous() Period {
	return PeriodOf(p.Start().AddDate(0, -1, 0))
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
