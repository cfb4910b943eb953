// Package identity answers "who is making this request" and which database
// role the request's connection must be opened under.
package identity

import (
	"context"

	"healthsystem/internal/domain/entity"
)

// Identity is built once per request by the session middleware and threaded
// through the request context. The zero value is an anonymous caller.
type Identity struct {
	Authenticated bool
	UserID        int64
	Email         string
	Role          entity.Role
	ReferenceID   *int64
	SessionID     string
}

// Anonymous returns the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{}
}

// HasRole reports whether the caller is authenticated with one of roles.
func (i Identity) HasRole(roles ...entity.Role) bool {
	if !i.Authenticated {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

type contextKey string

const (
	identityKey   contextKey = "identity"
	forcedRoleKey contextKey = "forced_role"
)

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the request identity, or Anonymous when none was set.
func FromContext(ctx context.Context) Identity {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return Anonymous()
	}
	return id
}

// WithForcedRole makes every connection opened under ctx use role regardless
// of the session. Only server-side code sets it: the credential routes and
// maintenance commands. No client input can.
func WithForcedRole(ctx context.Context, role entity.Role) context.Context {
	return context.WithValue(ctx, forcedRoleKey, role)
}

func ForcedRole(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(forcedRoleKey).(entity.Role)
	return role, ok
}
