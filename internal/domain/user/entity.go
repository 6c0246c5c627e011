package user

import (
	"strings"
	"time"
)

// Role is the console mode a signed-in user works in.
type Role string

const (
	RoleAdmin      Role = "admin"      // Full console
	RoleAttendance Role = "attendance" // Attendance operator only
)

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RoleFor derives the console mode from the signed-in email. The attendance
// operator account is identified by a configured address; everyone else is admin.
func RoleFor(email string, attendanceEmail string) Role {
	if attendanceEmail != "" && strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(attendanceEmail)) {
		return RoleAttendance
	}
	return RoleAdmin
}

// IsAdmin checks if the role has the full console
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
