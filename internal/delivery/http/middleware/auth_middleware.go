package middleware

import (
	"context"
	"errors"
	"net/http"

	"healthsystem/internal/identity"
	"healthsystem/internal/infrastructure/session"
	"healthsystem/pkg/jwt"
	"healthsystem/pkg/response"

	"github.com/sirupsen/logrus"
)

// SessionLoader looks up a stored session by id.
type SessionLoader interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	sessions   SessionLoader
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessions SessionLoader, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
		log:        log,
	}
}

// LoadSession attaches the caller's identity to the request context. A missing,
// invalid or expired cookie leaves the request anonymous; it never rejects.
func (m *AuthMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := m.identify(r)
		next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
	})
}

func (m *AuthMiddleware) identify(r *http.Request) identity.Identity {
	cookie, err := r.Cookie(m.jwtService.CookieName())
	if err != nil || cookie.Value == "" {
		return identity.Anonymous()
	}

	claims, err := m.jwtService.ValidateToken(cookie.Value)
	if err != nil {
		m.log.WithError(err).Debug("Ignoring invalid session cookie")
		return identity.Anonymous()
	}

	sess, err := m.sessions.Get(r.Context(), claims.SessionID)
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			m.log.WithError(err).Warn("Failed to load session")
		}
		return identity.Anonymous()
	}
	if sess.UserID != claims.UserID {
		m.log.WithField("session_id", claims.SessionID).Warn("Session cookie does not match stored session")
		return identity.Anonymous()
	}

	return sess.Identity()
}

// RequireAuth rejects anonymous callers with 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !identity.FromContext(r.Context()).Authenticated {
			response.Unauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
