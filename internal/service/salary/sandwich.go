package salary

import (
	"fmt"
	"sort"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
)

// maxSandwichGap is the widest run of days between two leave days that still
// gets bridged.
const maxSandwichGap = 2

// SandwichLeave counts leave days, adding weekend and holiday days that sit in
// a short gap between two leave days. Leave on Friday and Monday costs four
// days, not two. Input order does not matter. A repeated day still counts
// but bridges nothing.
func SandwichLeave(leaveDays []string, holidays map[string]bool) (int, error) {
	if len(leaveDays) == 0 {
		return 0, nil
	}

	sorted := make([]string, 0, len(leaveDays))
	for _, d := range leaveDays {
		if _, err := calendar.ParseDay(d); err != nil {
			return 0, fmt.Errorf("%w: %q", salary.ErrInvalidLeaveDate, d)
		}
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	total := len(leaveDays)
	for i := 1; i < len(sorted); i++ {
		prev, _ := calendar.ParseDay(sorted[i-1])
		curr, _ := calendar.ParseDay(sorted[i])

		gap := calendar.DaysBetween(prev, curr) - 1
		if gap <= 0 || gap > maxSandwichGap {
			continue
		}
		for j := 1; j <= gap; j++ {
			between := prev.AddDate(0, 0, j)
			if calendar.IsWeekend(between) || holidays[calendar.FormatDay(between)] {
				total++
			}
		}
	}
	return total, nil
}
