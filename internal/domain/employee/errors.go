package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmailExists           = errors.New("email already registered to another employee")
	ErrInvalidEmploymentType = errors.New("employment type must be Standard, Remote or Myself")
)
