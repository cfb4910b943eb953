package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"healthsystem/internal/domain/entity"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

var procedureName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

const cleanupTimeout = 5 * time.Second

// Querier is the statement surface shared by the broker and the transaction
// handed to WithinTransaction.
type Querier interface {
	QueryMany(ctx context.Context, sql string, args ...any) ([]Row, error)
	QueryOne(ctx context.Context, sql string, args ...any) (Row, error)
	Execute(ctx context.Context, sql string, args ...any) (Result, error)
	CallProcedure(ctx context.Context, name string, args ...any) error
}

// Transactor is a Querier that can also group statements atomically.
type Transactor interface {
	Querier
	WithinTransaction(ctx context.Context, fn func(q Querier) error) error
}

// RoleResolver picks the database role a request runs under.
type RoleResolver interface {
	EffectiveRole(ctx context.Context) entity.Role
}

// Broker owns at most one connection for the lifetime of a request. The
// connection is opened on first use under the role the resolver picks at that
// moment and stays bound to it until Close.
type Broker struct {
	registry *Registry
	resolver RoleResolver
	opener   Opener
	timeout  time.Duration
	log      *logrus.Logger

	mu     sync.Mutex
	conn   Conn
	role   entity.Role
	closed bool
}

func (b *Broker) acquire(ctx context.Context) (Conn, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBrokerClosed
	}
	if b.conn != nil {
		return b.conn, nil
	}

	creds := b.registry.Resolve(b.resolver.EffectiveRole(ctx))

	openCtx, cancel := b.withTimeout(ctx)
	defer cancel()

	conn, err := b.opener.Open(openCtx, creds)
	if err != nil {
		b.log.WithError(err).WithField("role", creds.Role.String()).Error("Failed to open database connection")
		return nil, mapError("open connection", err)
	}

	b.conn = conn
	b.role = creds.Role
	b.log.WithField("role", creds.Role.String()).Debug("Opened database connection")

	return conn, nil
}

func (b *Broker) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

// Role returns the role the connection was opened under, if it was opened.
func (b *Broker) Role() (entity.Role, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.role, b.conn != nil
}

func (b *Broker) QueryMany(ctx context.Context, sql string, args ...any) ([]Row, error) {
	conn, err := b.acquire(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	rs, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("query", err)
	}
	return rs.Rows, nil
}

// QueryOne returns the first row, or ErrNoRows.
func (b *Broker) QueryOne(ctx context.Context, sql string, args ...any) (Row, error) {
	rows, err := b.QueryMany(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows[0], nil
}

// Execute runs a single write in its own transaction.
func (b *Broker) Execute(ctx context.Context, sql string, args ...any) (Result, error) {
	var res Result
	err := b.WithinTransaction(ctx, func(q Querier) error {
		var err error
		res, err = q.Execute(ctx, sql, args...)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// CallProcedure invokes a stored procedure in its own transaction.
func (b *Broker) CallProcedure(ctx context.Context, name string, args ...any) error {
	// Validate before opening anything.
	if _, err := callStatement(name, len(args)); err != nil {
		return err
	}
	return b.WithinTransaction(ctx, func(q Querier) error {
		return q.CallProcedure(ctx, name, args...)
	})
}

// WithinTransaction runs fn in one transaction. It commits when fn returns nil
// and rolls back when fn returns an error or panics.
func (b *Broker) WithinTransaction(ctx context.Context, fn func(q Querier) error) error {
	conn, err := b.acquire(ctx)
	if err != nil {
		return err
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return mapError("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			b.rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(&txQuerier{tx: tx, broker: b}); err != nil {
		b.rollback(ctx, tx)
		return mapError("transaction", err)
	}

	if err := tx.Commit(ctx); err != nil {
		b.rollback(ctx, tx)
		return mapError("commit", err)
	}

	return nil
}

// rollback runs detached from ctx so a cancelled request still releases its
// locks.
func (b *Broker) rollback(ctx context.Context, tx Tx) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := tx.Rollback(rctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		b.log.WithError(err).WithField("role", b.role.String()).Warn("Failed to roll back transaction")
	}
}

// Close releases the connection. It is safe to call more than once and on a
// broker that never opened a connection.
func (b *Broker) Close(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	if b.conn == nil {
		return nil
	}

	conn := b.conn
	b.conn = nil

	if err := conn.Close(ctx); err != nil {
		b.log.WithError(err).WithField("role", b.role.String()).Warn("Failed to close database connection")
		return fmt.Errorf("close connection: %w", err)
	}
	b.log.WithField("role", b.role.String()).Debug("Released database connection")
	return nil
}

type txQuerier struct {
	tx     Tx
	broker *Broker
}

func (q *txQuerier) query(ctx context.Context, sql string, args []any) (*ResultSet, error) {
	ctx, cancel := q.broker.withTimeout(ctx)
	defer cancel()

	rs, err := q.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("statement", err)
	}
	return rs, nil
}

func (q *txQuerier) QueryMany(ctx context.Context, sql string, args ...any) ([]Row, error) {
	rs, err := q.query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return rs.Rows, nil
}

func (q *txQuerier) QueryOne(ctx context.Context, sql string, args ...any) (Row, error) {
	rs, err := q.query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	if len(rs.Rows) == 0 {
		return nil, ErrNoRows
	}
	return rs.Rows[0], nil
}

func (q *txQuerier) Execute(ctx context.Context, sql string, args ...any) (Result, error) {
	rs, err := q.query(ctx, sql, args)
	if err != nil {
		return Result{}, err
	}
	return rs.result(), nil
}

func (q *txQuerier) CallProcedure(ctx context.Context, name string, args ...any) error {
	stmt, err := callStatement(name, len(args))
	if err != nil {
		return err
	}
	_, err = q.query(ctx, stmt, args)
	return err
}

func callStatement(name string, n int) (string, error) {
	if !procedureName.MatchString(name) {
		return "", ErrInvalidProcedure
	}
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("CALL %s(%s)", name, strings.Join(placeholders, ", ")), nil
}
