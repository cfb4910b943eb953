package middleware

import (
	"context"
	"net/http"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/identity"
	"healthsystem/internal/infrastructure/database"
)

type BrokerFactory interface {
	New() *database.Broker
}

// ConnectionScope gives each request its own broker and releases the
// broker's connection when the handler returns, panics included.
func ConnectionScope(factory BrokerFactory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			broker := factory.New()
			// The connection must be released even when the client went away.
			defer broker.Close(context.WithoutCancel(r.Context()))

			next.ServeHTTP(w, r.WithContext(database.WithBroker(r.Context(), broker)))
		})
	}
}

// ForceRole pins the database role for every route it wraps, whatever session
// the caller carries. Login and registration read and write user_account
// columns only the admin credentials may touch.
func ForceRole(role entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(identity.WithForcedRole(r.Context(), role)))
		})
	}
}
