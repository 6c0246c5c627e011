package attendance

import "errors"

// Attendance domain errors
var (
	// Marking preconditions
	ErrOutsideMarkingWindow = errors.New("attendance can only be marked during the marking window")
	ErrFutureDate           = errors.New("attendance cannot be marked for a future date")
	ErrEmployeeNotSelected  = errors.New("an employee must be selected")
	ErrInvalidStatus        = errors.New("status cannot be selected manually")
	ErrInvalidMarkingWindow = errors.New("invalid marking window")

	// General errors
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAttendanceAlreadyMarked = errors.New("attendance already marked for this employee on this date")
	ErrNothingToMark           = errors.New("all eligible employees are already marked for this date")
)
