package database

import (
	"context"
	"fmt"
	"strconv"

	"healthsystem/config"

	"github.com/jackc/pgx/v5"
)

const applicationName = "healthsystem"

// PgxOpener opens one unpooled pgx connection per call.
type PgxOpener struct {
	cfg config.DBConfig
}

func NewPgxOpener(cfg config.DBConfig) *PgxOpener {
	return &PgxOpener{cfg: cfg}
}

// DSN returns the connection string without user or password.
func (o *PgxOpener) DSN() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s sslmode=%s",
		o.cfg.Host, o.cfg.Port, o.cfg.Name, o.cfg.SSLMode)
}

func (o *PgxOpener) Open(ctx context.Context, creds CredentialSet) (Conn, error) {
	cc, err := pgx.ParseConfig(o.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	cc.User = creds.Username
	cc.Password = creds.Secret
	if o.cfg.ConnectTimeout > 0 {
		cc.ConnectTimeout = o.cfg.ConnectTimeout
	}
	cc.RuntimeParams["application_name"] = applicationName + ":" + creds.Role.String()
	if o.cfg.StatementTimeout > 0 {
		cc.RuntimeParams["statement_timeout"] = strconv.FormatInt(o.cfg.StatementTimeout.Milliseconds(), 10)
	}

	conn, err := pgx.ConnectConfig(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("connect as %s: %w", creds.Username, err)
	}
	return &pgxConn{conn: conn}, nil
}

type pgxConn struct {
	conn *pgx.Conn
}

func (c *pgxConn) Query(ctx context.Context, sql string, args ...any) (*ResultSet, error) {
	return collect(ctx, c.conn, sql, args)
}

func (c *pgxConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxTx{tx: tx}, nil
}

func (c *pgxConn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

type pgxTx struct {
	tx pgx.Tx
}

func (t *pgxTx) Query(ctx context.Context, sql string, args ...any) (*ResultSet, error) {
	return collect(ctx, t.tx, sql, args)
}

func (t *pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgxTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// collect reads every row of the statement into memory. Statements without a
// result set (INSERT without RETURNING, CALL) yield no rows but still report
// the affected row count.
func collect(ctx context.Context, q pgxQuerier, sql string, args []any) (*ResultSet, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	rs := &ResultSet{
		Columns: make([]string, len(fields)),
		Rows:    []Row{},
	}
	for i, fd := range fields {
		rs.Columns[i] = fd.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = normalizeValue(fd.DataTypeOID, values[i])
		}
		rs.Rows = append(rs.Rows, row)
	}

	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rs.RowsAffected = rows.CommandTag().RowsAffected()

	return rs, nil
}
