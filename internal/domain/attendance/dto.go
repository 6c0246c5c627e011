package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/validator"
)

type MarkAttendanceRequest struct {
	EmployeeID          string `json:"employee_id"`
	Date                string `json:"date"`
	Status              string `json:"status"`
	TimeIn              string `json:"time_in"`
	LateArrivalApproved string `json:"late_arrival_approved"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, err := calendar.NormalizeDate(r.Date); err != nil {
		errs.Add("date", "date is not a recognizable date")
	}
	validateMarkFields(&errs, r.Status, r.TimeIn, r.LateArrivalApproved)

	return errs.Err()
}

// Normalize fills the placeholders the store expects.
func (r *MarkAttendanceRequest) Normalize() {
	r.TimeIn, r.LateArrivalApproved = normalizeMarkFields(r.TimeIn, r.LateArrivalApproved)
}

// UpdateAttendanceRequest amends a record. Employee, name, role and date are immutable.
type UpdateAttendanceRequest struct {
	Status              string `json:"status"`
	TimeIn              string `json:"time_in"`
	LateArrivalApproved string `json:"late_arrival_approved"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	validateMarkFields(&errs, r.Status, r.TimeIn, r.LateArrivalApproved)
	return errs.Err()
}

func (r *UpdateAttendanceRequest) Normalize() {
	r.TimeIn, r.LateArrivalApproved = normalizeMarkFields(r.TimeIn, r.LateArrivalApproved)
}

func validateMarkFields(errs *validator.ValidationErrors, status, timeIn, approved string) {
	if validator.IsEmpty(status) {
		errs.Add("status", "status is required")
	} else if !Status(status).IsSelectable() {
		errs.Add("status", "status must be one of Present, Absent, Work From Home, Approved Leave, Emergency Leave, Medical Leave, Holiday")
	}
	if !validator.IsEmpty(timeIn) && !validator.IsValidClock(strings.TrimSpace(timeIn)) {
		errs.Add("time_in", "time_in must be HH:MM or -")
	}
	if !validator.IsEmpty(approved) && !validator.IsInSlice(approved, []string{ApprovalYes, ApprovalNo, ApprovalNone}) {
		errs.Add("late_arrival_approved", "late_arrival_approved must be Yes, No or -")
	}
}

func normalizeMarkFields(timeIn, approved string) (string, string) {
	timeIn = strings.TrimSpace(timeIn)
	if timeIn == "" {
		timeIn = calendar.NoTime
	}
	if strings.TrimSpace(approved) == "" {
		approved = ApprovalNo
	}
	return timeIn, approved
}

// MarkHolidayRequest marks every eligible unmarked employee for one date.
type MarkHolidayRequest struct {
	Date   string `json:"date"`
	TimeIn string `json:"time_in"`
}

func (r *MarkHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, err := calendar.NormalizeDate(r.Date); err != nil {
		errs.Add("date", "date is not a recognizable date")
	}
	if !validator.IsEmpty(r.TimeIn) && !validator.IsValidClock(strings.TrimSpace(r.TimeIn)) {
		errs.Add("time_in", "time_in must be HH:MM or -")
	}

	return errs.Err()
}

type AttendanceFilter struct {
	Date   string
	Name   string
	Status string
}

type AttendanceResponse struct {
	ID                  string `json:"id"`
	EmployeeID          string `json:"employee_id"`
	Name                string `json:"name"`
	Role                string `json:"role"`
	Date                string `json:"date"`
	Day                 string `json:"day"`
	Status              Status `json:"status"`
	TimeIn              string `json:"time_in"`
	LateArrivalApproved string `json:"late_arrival_approved"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

// BulkMarkResult is the outcome for one employee of a bulk holiday run.
type BulkMarkResult struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Marked     bool   `json:"marked"`
	Status     Status `json:"status,omitempty"`
	RecordID   string `json:"record_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

type BulkMarkResponse struct {
	Date    string           `json:"date"`
	Marked  int              `json:"marked"`
	Failed  int              `json:"failed"`
	Results []BulkMarkResult `json:"results"`
}

type UnmarkedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

// SummaryRow aggregates one employee's normalized month.
type SummaryRow struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
	LateArrival int    `json:"late_arrival"`
	HalfPresent int    `json:"half_present"`
	Leave       int    `json:"leave"`
	Holiday     int    `json:"holiday"`
	Off         int    `json:"off"`
	NoRecord    int    `json:"no_record"`
}

type MonthlySummaryResponse struct {
	Month       string       `json:"month"`
	WorkingDays int          `json:"working_days"`
	Rows        []SummaryRow `json:"rows"`
}

type SheetResponse struct {
	EmployeeID string        `json:"employee_id"`
	Name       string        `json:"name"`
	Role       string        `json:"role"`
	Month      string        `json:"month"`
	Days       []DailyRecord `json:"days"`
	Skipped    []string      `json:"skipped,omitempty"`
}
