package attendance

import (
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
)

type Status string

const (
	StatusPresent        Status = "Present"
	StatusAbsent         Status = "Absent"
	StatusWorkFromHome   Status = "Work From Home"
	StatusApprovedLeave  Status = "Approved Leave"
	StatusEmergencyLeave Status = "Emergency Leave"
	StatusMedicalLeave   Status = "Medical Leave"
	StatusHoliday        Status = "Holiday"

	// Derived statuses, never chosen by the operator.
	StatusHalfPresent Status = "Half Present"
	StatusLateArrival Status = "Late Arrival"
	StatusOff         Status = "Off"
	StatusNoRecord    Status = "No Record"
)

// SelectableStatuses are the statuses an operator may submit.
var SelectableStatuses = []Status{
	StatusPresent,
	StatusAbsent,
	StatusWorkFromHome,
	StatusApprovedLeave,
	StatusEmergencyLeave,
	StatusMedicalLeave,
	StatusHoliday,
}

func (s Status) IsSelectable() bool {
	for _, st := range SelectableStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// IsLeave reports the paid leave kinds.
func (s Status) IsLeave() bool {
	return s == StatusApprovedLeave || s == StatusEmergencyLeave || s == StatusMedicalLeave
}

// Approval values for LateArrivalApproved.
const (
	ApprovalYes  = "Yes"
	ApprovalNo   = "No"
	ApprovalNone = calendar.NoTime
)

// Record is one raw attendance entry as stored. Several may exist for the same
// employee and day; NormalizeMonth collapses them.
type Record struct {
	ID                  string
	EmployeeID          string
	Name                string
	Role                string
	Date                string // as submitted, e.g. "6/7/2024"
	Day                 string // canonical "YYYY-MM-DD", empty for legacy rows
	Status              Status
	TimeIn              string
	LateArrivalApproved string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DailyRecord is the canonical status of one calendar day.
type DailyRecord struct {
	Date                string `json:"date"`
	Status              Status `json:"status"`
	TimeIn              string `json:"time_in"`
	LateArrivalApproved string `json:"late_arrival_approved"`
	RecordID            string `json:"record_id,omitempty"`
	Synthetic           bool   `json:"synthetic"`
}

// Sheet is the normalized month for one employee: exactly one DailyRecord per
// calendar day in ascending order.
type Sheet struct {
	EmployeeID string         `json:"employee_id"`
	Month      calendar.Month `json:"month"`
	Days       []DailyRecord  `json:"days"`
	// Skipped lists raw record IDs whose date could not be parsed.
	Skipped []string `json:"skipped,omitempty"`
}

// Count returns how many days carry status s.
func (s Sheet) Count(status Status) int {
	n := 0
	for _, d := range s.Days {
		if d.Status == status {
			n++
		}
	}
	return n
}
