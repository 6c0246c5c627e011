package auth

import "context"

// TokenRepository persists refresh tokens so sessions survive restarts and can be revoked.
type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq SessionTrackingRequest) error
	// IsRefreshTokenRevoked returns the owning user and whether the token is revoked or expired.
	IsRefreshTokenRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
