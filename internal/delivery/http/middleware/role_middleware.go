package middleware

import (
	"net/http"
	"strings"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/identity"
	"healthsystem/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from the identity LoadSession put in the context
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	message := roleMessage(allowed)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := identity.FromContext(r.Context())
			if !id.Authenticated {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if !id.HasRole(allowed...) {
				response.Forbidden(w, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// roleMessage renders e.g. "Physician access required" or
// "Physician or admin access required".
func roleMessage(roles []entity.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	msg := strings.Join(names, " or ") + " access required"
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// RequirePhysician is a convenience middleware for physician-only endpoints
func RequirePhysician(next http.Handler) http.Handler {
	return RequireRole(entity.RolePhysician)(next)
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RolePatient)(next)
}

// RequireStaff allows physicians and admins
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RolePhysician, entity.RoleAdmin)(next)
}
