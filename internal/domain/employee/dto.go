package employee

import (
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	EmploymentType string          `json:"employment_type"`
	Salary         decimal.Decimal `json:"salary"`
	Email          *string         `json:"email,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	JoinedAt       *string         `json:"joined_at,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	if validator.IsEmpty(r.Role) {
		errs.Add("role", "role is required")
	} else if len(r.Role) > 100 {
		errs.Add("role", "role must not exceed 100 characters")
	}

	if validator.IsEmpty(r.EmploymentType) {
		errs.Add("employment_type", "employment_type is required")
	} else if !EmploymentType(r.EmploymentType).IsValid() {
		errs.Add("employment_type", "employment_type must be Standard, Remote or Myself")
	}

	if r.Salary.IsNegative() {
		errs.Add("salary", "salary must not be negative")
	}

	validateOptional(&errs, r.Email, r.PhoneNumber, r.JoinedAt)

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	Name           *string          `json:"name,omitempty"`
	Role           *string          `json:"role,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
	Email          *string          `json:"email,omitempty"`
	PhoneNumber    *string          `json:"phone_number,omitempty"`
	JoinedAt       *string          `json:"joined_at,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.Role != nil && validator.IsEmpty(*r.Role) {
		errs.Add("role", "role must not be empty")
	}
	if r.EmploymentType != nil && !EmploymentType(*r.EmploymentType).IsValid() {
		errs.Add("employment_type", "employment_type must be Standard, Remote or Myself")
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs.Add("salary", "salary must not be negative")
	}

	validateOptional(&errs, r.Email, r.PhoneNumber, r.JoinedAt)

	return errs.Err()
}

func validateOptional(errs *validator.ValidationErrors, email, phone, joinedAt *string) {
	if email != nil && !validator.IsEmpty(*email) && !validator.IsValidEmail(*email) {
		errs.Add("email", "invalid email format")
	}
	if phone != nil && !validator.IsEmpty(*phone) && !validator.IsValidPhoneNumber(*phone) {
		errs.Add("phone_number", "invalid phone number")
	}
	if joinedAt != nil && !validator.IsEmpty(*joinedAt) && !validator.IsValidDay(*joinedAt) {
		errs.Add("joined_at", "joined_at must be in YYYY-MM-DD format")
	}
}

// EmployeeFilter narrows List. Zero value lists everyone.
type EmployeeFilter struct {
	Search         string
	EmploymentType string
	MarkableOnly   bool
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	EmploymentType string          `json:"employment_type"`
	Salary         decimal.Decimal `json:"salary"`
	Email          *string         `json:"email,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	JoinedAt       *string         `json:"joined_at,omitempty"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}
