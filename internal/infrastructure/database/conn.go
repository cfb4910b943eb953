package database

import "context"

// Conn is a single database session. The broker owns exactly one per request.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (*ResultSet, error)
	Begin(ctx context.Context) (Tx, error)
	Close(ctx context.Context) error
}

type Tx interface {
	Query(ctx context.Context, sql string, args ...any) (*ResultSet, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Opener establishes a new session authenticated with creds.
type Opener interface {
	Open(ctx context.Context, creds CredentialSet) (Conn, error)
}
