package middleware

import (
	"context"
	"net/http"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/response"
	"github.com/RX5950XT/portfolio-visualizer/internal/auth"
)

type contextKey string

// roleContextKey carries the authenticated role through the request context
const roleContextKey contextKey = "role"

// Session resolves the session cookie into a role and stores it in the
// request context. Requests without a valid session proceed with no role;
// route guards decide whether that is acceptable.
func Session(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err == nil {
				if role, err := authService.VerifyToken(cookie.Value); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), roleContextKey, role))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests whose session does not carry one of the
// allowed roles. A missing session yields 401, a valid session with the
// wrong role yields 403. Applied before any other request validation.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" {
				response.RespondError(w, http.StatusUnauthorized, "authentication required", nil)
				return
			}
			if !allowed[role] {
				response.RespondError(w, http.StatusForbidden, "insufficient privileges", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RoleFromContext returns the authenticated role, or "" when the request
// carries no valid session
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleContextKey).(string)
	return role
}
