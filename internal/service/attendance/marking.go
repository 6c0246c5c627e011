package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
)

// DefaultMarkingWindow opens at 17:00 and closes at 03:00 the next morning.
const DefaultMarkingWindow = "17-24,0-3"

// HourRange covers hours From up to but excluding To.
type HourRange struct {
	From int
	To   int
}

func (r HourRange) contains(hour int) bool {
	return hour >= r.From && hour < r.To
}

// MarkingWindow is a set of hour ranges; an instant is inside when any range holds it.
type MarkingWindow []HourRange

// ParseMarkingWindow reads "17-24,0-3" style hour ranges.
func ParseMarkingWindow(raw string) (MarkingWindow, error) {
	var window MarkingWindow
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fromStr, toStr, ok := strings.Cut(part, "-")
		if !ok {
			return nil, fmt.Errorf("%w: %q", attendance.ErrInvalidMarkingWindow, part)
		}
		from, errFrom := strconv.Atoi(strings.TrimSpace(fromStr))
		to, errTo := strconv.Atoi(strings.TrimSpace(toStr))
		if errFrom != nil || errTo != nil || from < 0 || to > 24 || from >= to {
			return nil, fmt.Errorf("%w: %q", attendance.ErrInvalidMarkingWindow, part)
		}
		window = append(window, HourRange{From: from, To: to})
	}
	if len(window) == 0 {
		return nil, fmt.Errorf("%w: empty", attendance.ErrInvalidMarkingWindow)
	}
	return window, nil
}

// Contains reports whether t, read in its own location, falls in the window.
func (w MarkingWindow) Contains(t time.Time) bool {
	hour := t.Hour()
	for _, r := range w {
		if r.contains(hour) {
			return true
		}
	}
	return false
}

// halfPresentFrom is the check-in time from which an unapproved Present becomes Half Present.
const halfPresentFrom = "20:00"

// FinalizeStatus applies the rules every submitted status goes through before
// it is stored: weekends are Off, Holiday stays Holiday, and a Present
// check-in at or after 20:00 without approval is Half Present.
func FinalizeStatus(day string, status attendance.Status, timeIn string, approved string) attendance.Status {
	if calendar.IsWeekendDay(day) {
		return attendance.StatusOff
	}
	if status == attendance.StatusHoliday {
		return attendance.StatusHoliday
	}
	if status == attendance.StatusPresent &&
		calendar.HasTime(timeIn) &&
		calendar.TimeToMinutes(timeIn) >= calendar.TimeToMinutes(halfPresentFrom) &&
		approved == attendance.ApprovalNo {
		return attendance.StatusHalfPresent
	}
	return status
}
