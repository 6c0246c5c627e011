package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month t falls in, using t's location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MarshalText lets Month travel as "YYYY-MM" in JSON.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(b []byte) error {
	parsed, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Days is the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstDay returns the canonical first day.
func (m Month) FirstDay() string {
	return fmt.Sprintf("%04d-%02d-01", m.Year, int(m.Month))
}

// LastDay returns the canonical last day.
func (m Month) LastDay() string {
	return fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), m.Days())
}

// Contains reports whether the canonical day belongs to m.
func (m Month) Contains(day string) bool {
	return day >= m.FirstDay() && day <= m.LastDay()
}

// EnumerateDays lists every day of the month, ascending.
func EnumerateDays(year int, month time.Month) []string {
	m := Month{Year: year, Month: month}
	days := make([]string, 0, m.Days())
	for d := 1; d <= m.Days(); d++ {
		days = append(days, fmt.Sprintf("%04d-%02d-%02d", year, int(month), d))
	}
	return days
}

// WorkingDays counts the weekdays in m.
func WorkingDays(m Month) int {
	n := 0
	for _, day := range EnumerateDays(m.Year, m.Month) {
		if !IsWeekendDay(day) {
			n++
		}
	}
	return n
}
