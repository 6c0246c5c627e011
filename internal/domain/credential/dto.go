package credential

import "github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/validator"

// CredentialRequest is used for both create and update. Every field is required.
type CredentialRequest struct {
	EmployeeName         string `json:"employee_name"`
	CompanyEmail         string `json:"company_email"`
	CompanyEmailPassword string `json:"company_email_password"`
	CompanyTeamPassword  string `json:"company_team_password"`
	AgentName            string `json:"agent_name"`
	LaptopPassword       string `json:"laptop_password"`
}

func (r *CredentialRequest) Validate() error {
	var errs validator.ValidationErrors

	required := []struct {
		field string
		value string
	}{
		{"employee_name", r.EmployeeName},
		{"company_email", r.CompanyEmail},
		{"company_email_password", r.CompanyEmailPassword},
		{"company_team_password", r.CompanyTeamPassword},
		{"agent_name", r.AgentName},
		{"laptop_password", r.LaptopPassword},
	}
	for _, f := range required {
		if validator.IsEmpty(f.value) {
			errs.Add(f.field, f.field+" is required")
		}
	}
	if !validator.IsEmpty(r.CompanyEmail) && !validator.IsValidEmail(r.CompanyEmail) {
		errs.Add("company_email", "invalid email format")
	}

	return errs.Err()
}

type SecurityCodeRequest struct {
	SecurityCode string `json:"security_code"`
}

func (r *SecurityCodeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.SecurityCode) {
		errs.Add("security_code", "security_code is required")
	}
	return errs.Err()
}

// CredentialSummary is the listing view; secrets never leave the vault here.
type CredentialSummary struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employee_name"`
	CompanyEmail string `json:"company_email"`
	AgentName    string `json:"agent_name"`
	UpdatedAt    string `json:"updated_at"`
}

type CredentialDetail struct {
	ID                   string `json:"id"`
	EmployeeName         string `json:"employee_name"`
	CompanyEmail         string `json:"company_email"`
	CompanyEmailPassword string `json:"company_email_password"`
	CompanyTeamPassword  string `json:"company_team_password"`
	AgentName            string `json:"agent_name"`
	LaptopPassword       string `json:"laptop_password"`
}
