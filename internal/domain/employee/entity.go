package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string
	Name           string
	Role           string
	EmploymentType EmploymentType
	Salary         decimal.Decimal
	Email          *string
	PhoneNumber    *string
	JoinedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EmploymentType drives the deduction and marking exemptions.
type EmploymentType string

const (
	EmploymentTypeStandard EmploymentType = "Standard"
	// Remote employees are never deducted and are left out of the marking lists.
	EmploymentTypeRemote EmploymentType = "Remote"
	// Myself is the console owner: no salary calculation, no attendance marking.
	EmploymentTypeMyself EmploymentType = "Myself"
)

func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentTypeStandard, EmploymentTypeRemote, EmploymentTypeMyself:
		return true
	}
	return false
}

// IsRemote reports whether salary deductions are waived.
func (e Employee) IsRemote() bool {
	return e.EmploymentType == EmploymentTypeRemote
}

// IsSelf reports whether the record belongs to the console owner.
func (e Employee) IsSelf() bool {
	return e.EmploymentType == EmploymentTypeMyself
}

// Markable reports whether the employee shows up on daily marking lists.
func (e Employee) Markable() bool {
	return !e.IsRemote() && !e.IsSelf()
}
