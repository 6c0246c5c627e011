package auth

import (
	"context"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	LoginWithGoogle(ctx context.Context, email string, googleID string, sessionReq SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID string) (user.UserResponse, error)
}
