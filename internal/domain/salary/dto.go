package salary

import (
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

type ReceiptResponse struct {
	ID               string          `json:"id,omitempty"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	Role             string          `json:"role"`
	Month            string          `json:"month"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	TotalDaysInMonth int             `json:"total_days_in_month"`
	LateArrivalCount int             `json:"late_arrival_count"`
	FullLeave        int             `json:"full_leave"`
	HalfPresentCount int             `json:"half_present_count"`
	ExtraLeave       int             `json:"extra_leave"`
	EffectiveLeave   decimal.Decimal `json:"effective_leave"`
	Deduction        decimal.Decimal `json:"deduction"`
	CalculatedSalary decimal.Decimal `json:"calculated_salary"`
	Confirmed        bool            `json:"confirmed"`
	SalarySent       bool            `json:"salary_sent"`
	ConfirmedAt      *string         `json:"confirmed_at,omitempty"`
}

func NewReceiptResponse(r Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		Role:             r.Role,
		Month:            r.Month,
		BaseSalary:       r.BaseSalary,
		TotalDaysInMonth: r.TotalDaysInMonth,
		LateArrivalCount: r.LateArrivalCount,
		FullLeave:        r.FullLeave,
		HalfPresentCount: r.HalfPresentCount,
		ExtraLeave:       r.ExtraLeave,
		EffectiveLeave:   r.EffectiveLeave,
		Deduction:        r.Deduction,
		CalculatedSalary: r.CalculatedSalary,
		Confirmed:        r.Confirmed,
		SalarySent:       r.SalarySent,
	}
	if r.ConfirmedAt != nil {
		s := r.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &s
	}
	return resp
}

// PayslipData feeds the payslip export.
type PayslipData struct {
	Receipt Receipt
	Sheet   attendance.Sheet
}
