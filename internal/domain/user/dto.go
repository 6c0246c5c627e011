package user

import (
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	Role          Role         `json:"role"`
	Permissions   []Permission `json:"permissions"`
	OAuthProvider *string      `json:"oauth_provider,omitempty"`
	CreatedAt     string       `json:"created_at"`
}

func NewUserResponse(u User, role Role) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Role:          role,
		Permissions:   RolePermissions[role],
		OAuthProvider: u.OAuthProvider,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

// CreateUserRequest represents request to create a console account
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters")
	}

	return errs.Err()
}
