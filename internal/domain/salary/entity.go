package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the outcome of a salary calculation. It is a draft until
// confirmed; confirmed receipts are stored once per employee and month.
type Receipt struct {
	ID               string
	EmployeeID       string
	EmployeeName     string
	Role             string
	Month            string
	BaseSalary       decimal.Decimal
	TotalDaysInMonth int
	LateArrivalCount int
	FullLeave        int
	HalfPresentCount int
	ExtraLeave       int
	EffectiveLeave   decimal.Decimal
	Deduction        decimal.Decimal
	CalculatedSalary decimal.Decimal
	Confirmed        bool
	SalarySent       bool
	ConfirmedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
