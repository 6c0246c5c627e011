// Package calendar holds the date and clock helpers shared by attendance and salary.
//
// Days are carried as canonical "YYYY-MM-DD" strings built from local calendar
// fields. Timestamps are always moved into the configured location first so a
// late-evening entry is never shifted onto the next UTC day.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the canonical day format.
const DayLayout = "2006-01-02"

// NoTime marks a missing clock value.
const NoTime = "-"

var ErrInvalidDate = errors.New("invalid date")

// Timestamp layouts tried after the slash-separated form. Order matters: the
// first layout that parses wins.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

var dateLayouts = []string{
	DayLayout,
	"2006/01/02",
	"2006/1/2",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon Jan 02 2006",
	"Mon Jan 2 2006",
	"02 Jan 2006",
	"2 January 2006",
}

// NormalizeDate converts a textual date into "YYYY-MM-DD" using the local timezone.
func NormalizeDate(input string) (string, error) {
	return NormalizeDateIn(input, time.Local)
}

// NormalizeDateIn converts a textual date into "YYYY-MM-DD" using the calendar
// fields of loc. Accepted shapes: "M/D/YYYY" (padded or not), ISO days, ISO
// timestamps with or without offset, and a few long-hand forms. The result is
// idempotent: feeding it back returns the same string.
func NormalizeDateIn(input string, loc *time.Location) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrInvalidDate
	}
	if loc == nil {
		loc = time.Local
	}

	if strings.Count(s, "/") == 2 && !strings.HasPrefix(s, "20") && !strings.HasPrefix(s, "19") {
		return parseUSDate(s)
	}

	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return FormatDay(t.In(loc)), nil
		}
	}

	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return FormatDay(t), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDate, input)
}

// parseUSDate handles "M/D/YYYY", the shape the marking screen has always stored.
func parseUSDate(s string) (string, error) {
	parts := strings.Split(s, "/")
	month, errM := strconv.Atoi(strings.TrimSpace(parts[0]))
	day, errD := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errM != nil || errD != nil || errY != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	if month < 1 || month > 12 || day < 1 || year < 1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return FormatDay(t), nil
}

// FormatDay renders the calendar fields of t, in t's own location.
func FormatDay(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// FormatUSDay renders a canonical day as "M/D/YYYY".
func FormatUSDay(day string) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return t.Format("1/2/2006"), nil
}

// ParseDay parses a canonical day into midnight UTC.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, day)
	}
	return t, nil
}

// DaysBetween returns the whole-day distance from a to b.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWeekendDay is IsWeekend for a canonical day. Unparseable input is not a weekend.
func IsWeekendDay(day string) bool {
	t, err := ParseDay(day)
	if err != nil {
		return false
	}
	return IsWeekend(t)
}

// TimeToMinutes converts "HH:MM" to minutes after midnight. Empty, "-" and
// malformed values yield 0, meaning no time was recorded.
func TimeToMinutes(hhmm string) int {
	s := strings.TrimSpace(hhmm)
	if s == "" || s == NoTime {
		return 0
	}
	h, m, ok := splitClock(s)
	if !ok {
		return 0
	}
	return h*60 + m
}

// IsClock reports whether s is a valid "HH:MM" value.
func IsClock(s string) bool {
	_, _, ok := splitClock(strings.TrimSpace(s))
	return ok
}

// HasTime reports whether s carries a usable clock value.
func HasTime(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != NoTime && IsClock(s)
}

func splitClock(s string) (int, int, bool) {
	hs, ms, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	// tolerate "HH:MM:SS"
	if i := strings.IndexByte(ms, ':'); i >= 0 {
		ms = ms[:i]
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
