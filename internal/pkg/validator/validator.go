package validator

import (
	"regexp"
	"strings"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns v as an error, or nil when empty.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidUUID accepts any RFC 4122 UUID in canonical form.
func IsValidUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// IsValidDay checks a canonical "YYYY-MM-DD" day.
func IsValidDay(day string) bool {
	_, err := calendar.ParseDay(day)
	return err == nil
}

// IsValidMonth checks "YYYY-MM".
func IsValidMonth(month string) bool {
	_, err := calendar.ParseMonth(month)
	return err == nil
}

// IsValidClock accepts "HH:MM" or the "-" placeholder.
func IsValidClock(s string) bool {
	return s == calendar.NoTime || calendar.IsClock(s)
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// IsValidPhoneNumber accepts digits with an optional leading +, ignoring spaces and dashes.
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phoneRegex.MatchString(phone)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
