package credential

import "errors"

var (
	ErrCredentialNotFound  = errors.New("credential not found")
	ErrInvalidSecurityCode = errors.New("invalid security code")
	ErrSealFailed          = errors.New("failed to seal credential secret")
	ErrOpenFailed          = errors.New("failed to open credential secret")
)
