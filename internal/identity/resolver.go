package identity

import (
	"context"
	"fmt"

	"healthsystem/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// Reason records which rule picked the effective role.
type Reason string

const (
	ReasonForced   Reason = "forced_override"
	ReasonSession  Reason = "session"
	ReasonFallback Reason = "fallback"
)

type Decision struct {
	Role   entity.Role
	Reason Reason
}

// Resolver decides the effective database role of a request: a forced override
// wins, then the authenticated session's role, then the configured fallback.
type Resolver struct {
	fallback entity.Role
	log      *logrus.Logger
}

func NewResolver(fallback string, log *logrus.Logger) (*Resolver, error) {
	role, err := entity.ParseRole(fallback)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback role: %w", err)
	}
	return &Resolver{fallback: role, log: log}, nil
}

func (r *Resolver) Fallback() entity.Role {
	return r.fallback
}

func (r *Resolver) Decide(ctx context.Context) Decision {
	if role, ok := ForcedRole(ctx); ok {
		if role.Valid() {
			return Decision{Role: role, Reason: ReasonForced}
		}
		r.log.WithField("forced_role", string(role)).Warn("Ignoring invalid forced role override")
	}

	id := FromContext(ctx)
	if id.Authenticated {
		if id.Role.Valid() {
			return Decision{Role: id.Role, Reason: ReasonSession}
		}
		r.log.WithFields(logrus.Fields{
			"user_id": id.UserID,
			"role":    string(id.Role),
		}).Warn("Session carries an unknown role, using fallback")
	}

	return Decision{Role: r.fallback, Reason: ReasonFallback}
}

// EffectiveRole is Decide plus a log line describing the decision.
func (r *Resolver) EffectiveRole(ctx context.Context) entity.Role {
	d := r.Decide(ctx)
	r.log.WithFields(logrus.Fields{
		"role":   d.Role.String(),
		"reason": string(d.Reason),
	}).Debug("Resolved database role")
	return d.Role
}
