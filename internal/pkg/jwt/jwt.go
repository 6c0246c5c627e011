package jwt

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	RefreshTokenCookieName = "refresh_token"
)

var ErrWrongTokenType = errors.New("unexpected token type")

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	// ParseRefreshToken verifies signature, expiry and type and returns the subject.
	ParseRefreshToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearRefreshTokenCookie() *http.Cookie
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpiration  time.Duration
	refreshTokenExpiration time.Duration
	secureCookie           bool
	tokenAuth              *jwtauth.JWTAuth
	revokedTokens          map[string]int64
	mu                     sync.RWMutex
	now                    func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration, refreshTokenExpiration time.Duration, secureCookie bool) *JWTService {
	return &JWTService{
		accessTokenExpiration:  accessTokenExpiration,
		refreshTokenExpiration: refreshTokenExpiration,
		secureCookie:           secureCookie,
		tokenAuth:              jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:          make(map[string]int64),
		now:                    time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    TokenTypeAccess,
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// GenerateRefreshToken carries a random jti so two tokens issued in the same
// second never collide in the token store.
func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.refreshTokenExpiration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"type":    TokenTypeRefresh,
		"jti":     uuid.NewString(),
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeRefresh {
		return "", ErrWrongTokenType
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshTokenCookieName,
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ClearRefreshTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     RefreshTokenCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken denies an access token until it would have expired anyway.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for t, exp := range j.revokedTokens {
		if exp <= now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	exp, revoked := j.revokedTokens[token]
	return revoked && exp > j.now().Unix()
}
