package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Factory builds one Broker per request. It holds only immutable state and is
// shared by all requests.
type Factory struct {
	registry *Registry
	resolver RoleResolver
	opener   Opener
	timeout  time.Duration
	log      *logrus.Logger
}

func NewFactory(registry *Registry, resolver RoleResolver, opener Opener, timeout time.Duration, log *logrus.Logger) *Factory {
	return &Factory{
		registry: registry,
		resolver: resolver,
		opener:   opener,
		timeout:  timeout,
		log:      log,
	}
}

// New returns a broker with no connection yet.
func (f *Factory) New() *Broker {
	return &Broker{
		registry: f.registry,
		resolver: f.resolver,
		opener:   f.opener,
		timeout:  f.timeout,
		log:      f.log,
	}
}

type contextKey string

const brokerKey contextKey = "db_broker"

func WithBroker(ctx context.Context, t Transactor) context.Context {
	return context.WithValue(ctx, brokerKey, t)
}

// BrokerFromContext returns the request's broker, or ErrNoScope when the
// request did not pass through the connection scope middleware.
func BrokerFromContext(ctx context.Context) (Transactor, error) {
	t, ok := ctx.Value(brokerKey).(Transactor)
	if !ok || t == nil {
		return nil, ErrNoScope
	}
	return t, nil
}
