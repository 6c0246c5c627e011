package auth

import "github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	// Email
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if len(r.Email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters long")
	} else if len(r.Password) > 255 {
		errs.Add("password", "password must not exceed 255 characters")
	}

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	}
	if len(r.RefreshToken) > 2048 {
		errs.Add("refresh_token", "refresh_token must not exceed 2048 characters")
	}

	return errs.Err()
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
	Role                  string `json:"role"`
}
