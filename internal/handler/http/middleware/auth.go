package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Principal is the signed-in user as carried by the access token.
type Principal struct {
	UserID string
	Email  string
	Role   user.Role
}

type principalKey struct{}

// AuthRequired accepts verified, unrevoked access tokens and stores the
// Principal in the request context. It runs after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, _ := claims["user_id"].(string)
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)
			if userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, Principal{
				UserID: userID,
				Email:  email,
				Role:   user.Role(role),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// PrincipalFromContext returns the Principal stored by AuthRequired.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// WithPrincipal is used by tests and internal callers that bypass token parsing.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}
