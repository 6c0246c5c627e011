package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/handler/http/response"
)

// RequireAdmin limits a route to the full console.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !principal.Role.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !user.HasPermission(principal.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, principal.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
