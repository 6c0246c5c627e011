package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/credential"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound), errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrGoogleAccountNotRegistered):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrGoogleLoginDisabled):
		NotFound(w, err.Error())
	case errors.Is(err, auth.ErrStateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered to another employee")
	case errors.Is(err, employee.ErrInvalidEmploymentType):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideMarkingWindow),
		errors.Is(err, attendance.ErrFutureDate),
		errors.Is(err, attendance.ErrEmployeeNotSelected),
		errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceAlreadyMarked), errors.Is(err, attendance.ErrNothingToMark):
		Conflict(w, err.Error())

	// Salary domain errors
	case errors.Is(err, salary.ErrNotApplicable):
		NotApplicable(w, err.Error())
	case errors.Is(err, salary.ErrReceiptNotFound):
		NotFound(w, "Salary receipt not found")
	case errors.Is(err, salary.ErrInvalidLeaveDate):
		BadRequest(w, err.Error(), nil)

	// Credential domain errors
	case errors.Is(err, credential.ErrCredentialNotFound):
		NotFound(w, "Credential not found")
	case errors.Is(err, credential.ErrInvalidSecurityCode):
		Forbidden(w, "Invalid security code")

	// Date input errors
	case errors.Is(err, calendar.ErrInvalidDate), errors.Is(err, calendar.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
