package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx              database.Transactor
	userRepo        user.UserRepository
	tokenRepo       auth.TokenRepository
	jwtService      jwt.Service
	attendanceEmail string
}

func NewAuthService(
	tx database.Transactor,
	userRepo user.UserRepository,
	tokenRepo auth.TokenRepository,
	jwtService jwt.Service,
	attendanceEmail string,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:              tx,
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		jwtService:      jwtService,
		attendanceEmail: attendanceEmail,
	}
}

// HashPassword returns the bcrypt hash stored in users.password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// issueTokens signs a token pair and stores the refresh token. ctx may carry a transaction.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	role := user.RoleFor(u.Email, a.attendanceEmail)

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(u.ID, u.Email, role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.tokenRepo.CreateRefreshToken(ctx, u.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionReq); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}

	tokenResponse.Role = string(role)
	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.userRepo.GetByEmail(ctx, strings.TrimSpace(loginReq.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	tokenResponse, err := a.issueTokens(ctx, userData, sessionReq)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("User logged in", "user_id", userData.ID, "role", tokenResponse.Role)
	return tokenResponse, nil
}

// LoginWithGoogle implements auth.AuthService. Only pre-provisioned console
// accounts may sign in; the Google identity is linked on first use.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string, googleID string, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		userData, err := a.userRepo.GetByEmail(txCtx, googleEmail)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return auth.ErrGoogleAccountNotRegistered
			}
			return fmt.Errorf("failed to get user data by email: %w", err)
		}

		if userData.OAuthProviderID == nil {
			userData, err = a.userRepo.LinkGoogleAccount(txCtx, googleID, userData.Email)
			if err != nil {
				return fmt.Errorf("failed to link google account: %w", err)
			}
		} else if *userData.OAuthProviderID != googleID {
			return auth.ErrInvalidCredentials
		}

		tokenResponse, err = a.issueTokens(txCtx, userData, sessionReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService. The presented token is revoked and
// a fresh pair is issued.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	// 1. Verify signature, expiry and type
	if _, err := a.jwtService.ParseRefreshToken(req.RefreshToken); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	var tokenResponse auth.TokenResponse
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		// 2. Check store for revocation/expiry
		userID, isRevoked, err := a.tokenRepo.IsRefreshTokenRevoked(txCtx, req.RefreshToken)
		if err != nil {
			return auth.ErrInvalidToken
		}
		if isRevoked {
			return auth.ErrRefreshTokenRevoked
		}

		// 3. Get user
		userData, err := a.userRepo.GetByID(txCtx, userID)
		if err != nil {
			return auth.ErrUserNotFound
		}

		// 4. Rotate
		if err := a.tokenRepo.RevokeRefreshToken(txCtx, req.RefreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		tokenResponse, err = a.issueTokens(txCtx, userData, sessionReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	return a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, isRevoked, err := a.tokenRepo.IsRefreshTokenRevoked(txCtx, token)
		if err != nil {
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.tokenRepo.RevokeRefreshToken(txCtx, token); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, auth.ErrUserNotFound
		}
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(userData, user.RoleFor(userData.Email, a.attendanceEmail)), nil
}
