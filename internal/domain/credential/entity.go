package credential

import "time"

// Credential holds the work accounts handed to an employee. Password fields
// are sealed before they reach the store.
type Credential struct {
	ID                   string
	EmployeeName         string
	CompanyEmail         string
	CompanyEmailPassword string
	CompanyTeamPassword  string
	AgentName            string
	LaptopPassword       string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
