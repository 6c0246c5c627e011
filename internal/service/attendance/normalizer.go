package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
)

// Check-in thresholds, in minutes after midnight, applied to a day that resolves to Present.
const (
	lateArrivalAfter = 1030 // 17:10
	halfPresentAfter = 1200 // 20:00
)

// NormalizeMonth collapses an employee's raw records into one DailyRecord per
// calendar day of month. Records outside the month are ignored; records whose
// date cannot be parsed are reported in Sheet.Skipped.
//
// Per day the first matching rule wins:
//  1. any Work From Home record
//  2. the earliest timed Present record, reclassified by check-in time
//  3. any Absent record
//  4. the first record by creation time, as stored
//
// Days without records become Off on weekends and No Record otherwise.
func NormalizeMonth(employeeID string, records []attendance.Record, month calendar.Month, loc *time.Location) attendance.Sheet {
	ordered := make([]attendance.Record, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	sheet := attendance.Sheet{EmployeeID: employeeID, Month: month}

	byDay := make(map[string][]attendance.Record)
	for _, r := range ordered {
		src := r.Day
		if src == "" {
			src = r.Date
		}
		day, err := calendar.NormalizeDateIn(src, loc)
		if err != nil {
			sheet.Skipped = append(sheet.Skipped, r.ID)
			continue
		}
		if !month.Contains(day) {
			continue
		}
		byDay[day] = append(byDay[day], r)
	}

	days := calendar.EnumerateDays(month.Year, month.Month)
	sheet.Days = make([]attendance.DailyRecord, 0, len(days))
	for _, day := range days {
		recs, ok := byDay[day]
		if !ok {
			sheet.Days = append(sheet.Days, missingDay(day))
			continue
		}
		sheet.Days = append(sheet.Days, resolveDay(day, recs))
	}

	return sheet
}

func missingDay(day string) attendance.DailyRecord {
	status := attendance.StatusNoRecord
	if calendar.IsWeekendDay(day) {
		status = attendance.StatusOff
	}
	return attendance.DailyRecord{
		Date:                day,
		Status:              status,
		TimeIn:              calendar.NoTime,
		LateArrivalApproved: attendance.ApprovalNone,
		Synthetic:           true,
	}
}

// resolveDay picks the canonical record for one day. recs is in creation order.
func resolveDay(day string, recs []attendance.Record) attendance.DailyRecord {
	for _, r := range recs {
		if r.Status == attendance.StatusWorkFromHome {
			return attendance.DailyRecord{
				Date:                day,
				Status:              attendance.StatusWorkFromHome,
				TimeIn:              calendar.NoTime,
				LateArrivalApproved: attendance.ApprovalNone,
				RecordID:            r.ID,
			}
		}
	}

	var (
		earliest     *attendance.Record
		firstUntimed *attendance.Record
	)
	for i := range recs {
		r := &recs[i]
		if r.Status != attendance.StatusPresent {
			continue
		}
		if !calendar.HasTime(r.TimeIn) {
			if firstUntimed == nil {
				firstUntimed = r
			}
			continue
		}
		if earliest == nil || calendar.TimeToMinutes(r.TimeIn) < calendar.TimeToMinutes(earliest.TimeIn) {
			earliest = r
		}
	}
	if earliest != nil {
		return attendance.DailyRecord{
			Date:                day,
			Status:              statusForCheckIn(earliest.TimeIn),
			TimeIn:              earliest.TimeIn,
			LateArrivalApproved: approvalOrNone(earliest.LateArrivalApproved),
			RecordID:            earliest.ID,
		}
	}
	if firstUntimed != nil {
		return attendance.DailyRecord{
			Date:                day,
			Status:              attendance.StatusPresent,
			TimeIn:              calendar.NoTime,
			LateArrivalApproved: approvalOrNone(firstUntimed.LateArrivalApproved),
			RecordID:            firstUntimed.ID,
		}
	}

	for _, r := range recs {
		if r.Status == attendance.StatusAbsent {
			return attendance.DailyRecord{
				Date:                day,
				Status:              attendance.StatusAbsent,
				TimeIn:              calendar.NoTime,
				LateArrivalApproved: attendance.ApprovalNone,
				RecordID:            r.ID,
			}
		}
	}

	first := recs[0]
	timeIn := first.TimeIn
	if timeIn == "" {
		timeIn = calendar.NoTime
	}
	return attendance.DailyRecord{
		Date:                day,
		Status:              first.Status,
		TimeIn:              timeIn,
		LateArrivalApproved: approvalOrNone(first.LateArrivalApproved),
		RecordID:            first.ID,
	}
}

// statusForCheckIn reclassifies a Present day by its check-in time.
func statusForCheckIn(timeIn string) attendance.Status {
	minutes := calendar.TimeToMinutes(timeIn)
	switch {
	case minutes > halfPresentAfter:
		return attendance.StatusHalfPresent
	case minutes > lateArrivalAfter:
		return attendance.StatusLateArrival
	default:
		return attendance.StatusPresent
	}
}

func approvalOrNone(v string) string {
	if v == "" {
		return attendance.ApprovalNone
	}
	return v
}
