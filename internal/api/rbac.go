package api

import (
	"context"
	"net/http"
)

// Roles, in ascending order of privilege. Viewers read published content,
// editors maintain it, admins additionally run destructive operations like
// deletes, reseeds and resets.
const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

var roleLevels = map[string]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
}

// HasAtLeast reports whether role meets or exceeds the required role.
// Unknown roles never qualify.
func HasAtLeast(role, required string) bool {
	level, ok := roleLevels[role]
	if !ok {
		return false
	}
	need, ok := roleLevels[required]
	if !ok {
		return false
	}
	return level >= need
}

// Identity is the caller as resolved by the Auth middleware.
type Identity struct {
	Role          string
	Authenticated bool
}

// IdentityFromContext returns the caller's identity, defaulting to an
// unauthenticated viewer for requests that never passed through Auth.
func IdentityFromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey).(Identity); ok {
		return id
	}
	return Identity{Role: RoleViewer}
}

// RequireRole wraps a handler with a role guard. Callers below the required
// role get 401 when they presented no credentials and 403 when their
// credentials simply don't stretch that far.
func RequireRole(required string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if HasAtLeast(identity.Role, required) {
			next.ServeHTTP(w, r)
			return
		}

		corrID := CorrelationID(r.Context())
		if !identity.Authenticated {
			WriteError(w, http.StatusUnauthorized, &Error{
				Status:        "error",
				Message:       "Authentication credentials not found.",
				CorrelationID: corrID,
				Category:      CategoryValidationError,
			})
			return
		}
		WriteError(w, http.StatusForbidden,
			NewForbiddenError("You do not have permission to perform this action.", corrID))
	})
}
