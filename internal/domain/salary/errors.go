package salary

import "errors"

var (
	// ErrNotApplicable is returned for the console owner. It is a no-op signal, not a failure.
	ErrNotApplicable    = errors.New("salary calculation does not apply to this employee")
	ErrReceiptNotFound  = errors.New("salary receipt not found")
	ErrInvalidLeaveDate = errors.New("invalid leave date")
)
