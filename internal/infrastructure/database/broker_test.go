package database

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"healthsystem/config"
	"healthsystem/internal/domain/entity"
	"healthsystem/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

type staticResolver struct {
	role  entity.Role
	calls int
}

func (r *staticResolver) EffectiveRole(context.Context) entity.Role {
	r.calls++
	return r.role
}

// fakeConn records statements. Writes made inside a transaction only reach
// committed after Commit.
type fakeConn struct {
	mu        sync.Mutex
	creds     CredentialSet
	reads     []string
	committed []string
	begins    int
	commits   int
	rollbacks int
	closes    int
	exec      func(ctx context.Context, sql string, args []any) (*ResultSet, error)
}

func (c *fakeConn) run(ctx context.Context, sql string, args []any) (*ResultSet, error) {
	if c.exec != nil {
		return c.exec(ctx, sql, args)
	}
	return &ResultSet{Rows: []Row{}}, nil
}

func (c *fakeConn) Query(ctx context.Context, sql string, args ...any) (*ResultSet, error) {
	c.mu.Lock()
	c.reads = append(c.reads, sql)
	c.mu.Unlock()
	return c.run(ctx, sql, args)
}

func (c *fakeConn) Begin(context.Context) (Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.begins++
	return &fakeTx{conn: c}, nil
}

func (c *fakeConn) Close(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

type fakeTx struct {
	conn    *fakeConn
	pending []string
	done    bool
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (*ResultSet, error) {
	rs, err := t.conn.run(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	t.pending = append(t.pending, sql)
	return rs, nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	t.conn.commits++
	t.conn.committed = append(t.conn.committed, t.pending...)
	t.done = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	if t.done {
		return nil
	}
	t.conn.rollbacks++
	t.pending = nil
	t.done = true
	return nil
}

type fakeOpener struct {
	mu    sync.Mutex
	conns []*fakeConn
	err   error
	exec  func(ctx context.Context, sql string, args []any) (*ResultSet, error)
}

func (o *fakeOpener) Open(_ context.Context, creds CredentialSet) (Conn, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return nil, o.err
	}
	c := &fakeConn{creds: creds, exec: o.exec}
	o.conns = append(o.conns, c)
	return c, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(config.DBConfig{
		Patient:   config.DBCredential{User: "hs_patient", Password: "pw-patient"},
		Physician: config.DBCredential{User: "hs_physician", Password: "pw-physician"},
		Admin:     config.DBCredential{User: "hs_admin", Password: "pw-admin"},
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return r
}

func newTestBroker(t *testing.T, role entity.Role, opener *fakeOpener, timeout time.Duration) (*Broker, *staticResolver) {
	t.Helper()
	resolver := &staticResolver{role: role}
	f := NewFactory(testRegistry(t), resolver, opener, timeout, quietLogger())
	return f.New(), resolver
}

func TestBroker_LazyOpen(t *testing.T) {
	opener := &fakeOpener{}
	b, resolver := newTestBroker(t, entity.RolePhysician, opener, 0)

	if _, ok := b.Role(); ok {
		t.Fatal("expected no connection before first use")
	}
	if err := b.Close(context.Background()); err != nil {
		t.Fatalf("close unused broker: %v", err)
	}
	if len(opener.conns) != 0 || resolver.calls != 0 {
		t.Errorf("expected no open and no role resolution, got %d opens, %d resolutions", len(opener.conns), resolver.calls)
	}
}

func TestBroker_OpensOnceUnderRequestRole(t *testing.T) {
	opener := &fakeOpener{}
	b, resolver := newTestBroker(t, entity.RolePatient, opener, 0)
	ctx := context.Background()

	if _, err := b.QueryMany(ctx, "SELECT 1"); err != nil {
		t.Fatalf("first query: %v", err)
	}
	resolver.role = entity.RoleAdmin
	if _, err := b.QueryMany(ctx, "SELECT 2"); err != nil {
		t.Fatalf("second query: %v", err)
	}

	if len(opener.conns) != 1 {
		t.Fatalf("expected 1 open, got %d", len(opener.conns))
	}
	if resolver.calls != 1 {
		t.Errorf("expected role resolved once, got %d", resolver.calls)
	}
	if got := opener.conns[0].creds.Username; got != "hs_patient" {
		t.Errorf("expected patient credentials, got %s", got)
	}
	if role, ok := b.Role(); !ok || role != entity.RolePatient {
		t.Errorf("expected broker bound to patient, got %q (%v)", role, ok)
	}
}

func TestBroker_UnknownRoleUsesAdmin(t *testing.T) {
	opener := &fakeOpener{}
	b, _ := newTestBroker(t, entity.Role("superuser"), opener, 0)

	if _, err := b.QueryMany(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("query: %v", err)
	}
	if got := opener.conns[0].creds.Username; got != "hs_admin" {
		t.Errorf("expected admin credentials, got %s", got)
	}
}

func TestBroker_CloseExactlyOnce(t *testing.T) {
	opener := &fakeOpener{}
	b, _ := newTestBroker(t, entity.RoleAdmin, opener, 0)
	ctx := context.Background()

	if _, err := b.QueryMany(ctx, "SELECT 1"); err != nil {
		t.Fatalf("query: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := b.Close(ctx); err != nil {
			t.Fatalf("close #%d: %v", i+1, err)
		}
	}
	if got := opener.conns[0].closes; got != 1 {
		t.Errorf("expected 1 close, got %d", got)
	}

	_, err := b.QueryMany(ctx, "SELECT 1")
	if !errors.Is(err, ErrBrokerClosed) {
		t.Errorf("expected ErrBrokerClosed after close, got %v", err)
	}
	if len(opener.conns) != 1 {
		t.Errorf("expected no reopen after close, got %d opens", len(opener.conns))
	}
}

func TestBroker_QueryOneNoRows(t *testing.T) {
	b, _ := newTestBroker(t, entity.RoleAdmin, &fakeOpener{}, 0)

	_, err := b.QueryOne(context.Background(), "SELECT * FROM patient WHERE patient_id = $1", 42)
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("expected not found kind, got %v", apperror.KindOf(err))
	}
}

func TestBroker_ExecuteCommits(t *testing.T) {
	opener := &fakeOpener{
		exec: func(_ context.Context, sql string, _ []any) (*ResultSet, error) {
			return &ResultSet{
				Columns:      []string{"clinic_id"},
				Rows:         []Row{{"clinic_id": int64(7)}},
				RowsAffected: 1,
			}, nil
		},
	}
	b, _ := newTestBroker(t, entity.RoleAdmin, opener, 0)

	res, err := b.Execute(context.Background(), "INSERT INTO clinic (name, address) VALUES ($1, $2) RETURNING clinic_id", "North", "1 Main St")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res.InsertID != 7 || res.RowsAffected != 1 {
		t.Errorf("expected insert id 7 and 1 row, got %+v", res)
	}

	conn := opener.conns[0]
	if conn.commits != 1 || conn.rollbacks != 0 {
		t.Errorf("expected 1 commit and no rollback, got %d/%d", conn.commits, conn.rollbacks)
	}
	if len(conn.committed) != 1 {
		t.Errorf("expected 1 committed statement, got %d", len(conn.committed))
	}
}

func TestBroker_ExecuteFailureRollsBack(t *testing.T) {
	cause := &pgconn.PgError{Code: "23503", Message: "violates foreign key"}
	opener := &fakeOpener{
		exec: func(context.Context, string, []any) (*ResultSet, error) { return nil, cause },
	}
	b, _ := newTestBroker(t, entity.RoleAdmin, opener, 0)

	_, err := b.Execute(context.Background(), "INSERT INTO appointment DEFAULT VALUES")
	if !apperror.IsKind(err, apperror.KindDatabase) {
		t.Fatalf("expected database error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be preserved, got %v", err)
	}
	conn := opener.conns[0]
	if conn.rollbacks != 1 || conn.commits != 0 {
		t.Errorf("expected rollback only, got %d commits, %d rollbacks", conn.commits, conn.rollbacks)
	}
}

func TestBroker_UniqueViolationIsConflict(t *testing.T) {
	opener := &fakeOpener{
		exec: func(context.Context, string, []any) (*ResultSet, error) {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "user_account_email_key"}
		},
	}
	b, _ := newTestBroker(t, entity.RoleAdmin, opener, 0)

	_, err := b.Execute(context.Background(), "INSERT INTO user_account (email) VALUES ($1)", "a@b.c")
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !IsUniqueViolation(err, "email") {
		t.Error("expected unique violation on email constraint")
	}
}

func TestBroker_WithinTransactionAtomic(t *testing.T) {
	opener := &fakeOpener{
		exec: func(_ context.Context, sql string, _ []any) (*ResultSet, error) {
			if strings.Contains(sql, "user_account") {
				return nil, errors.New("boom")
			}
			return &ResultSet{Columns: []string{"id"}, Rows: []Row{{"id": int64(1)}}, RowsAffected: 1}, nil
		},
	}
	b, _ := newTestBroker(t, entity.RoleAdmin, opener, 0)

	err := b.WithinTransaction(context.Background(), func(q Querier) error {
		if _, err := q.Execute(context.Background(), "INSERT INTO patient (name) VALUES ($1) RETURNING patient_id", "Ann"); err != nil {
			return err
		}
		_, err := q.Execute(context.Background(), "INSERT INTO user_account (email) VALUES ($1)", "ann@example.com")
		return err
	})
	if err == nil {
		t.Fatal("expected transaction error")
	}

	conn := opener.conns[0]
	if len(conn.committed) != 0 {
		t.Errorf("expected nothing committed, got %v", conn.committed)
	}
	if conn.rollbacks != 1 {
		t.Errorf("expected 1 rollback, got %d", conn.rollbacks)
	}
}

func TestBroker_WithinTransactionPanicRollsBack(t *testing.T) {
	opener := &fakeOpener{}
	b, _ := newTestBroker(t, entity.RoleAdmin, opener, 0)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		_ = b.WithinTransaction(context.Background(), func(q Querier) error {
			if _, err := q.Execute(context.Background(), "UPDATE billing SET payment_status = 'Paid'"); err != nil {
				return err
			}
			panic("handler bug")
		})
	}()

	conn := opener.conns[0]
	if conn.rollbacks != 1 || len(conn.committed) != 0 {
		t.Errorf("expected rollback of panicking transaction, got %d rollbacks, %v committed", conn.rollbacks, conn.committed)
	}
}

func TestBroker_StatementTimeout(t *testing.T) {
	opener := &fakeOpener{
		exec: func(ctx context.Context, _ string, _ []any) (*ResultSet, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	b, _ := newTestBroker(t, entity.RoleAdmin, opener, 20*time.Millisecond)

	start := time.Now()
	_, err := b.Execute(context.Background(), "SELECT pg_sleep(10)")
	if !apperror.IsKind(err, apperror.KindDatabase) {
		t.Fatalf("expected database error, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded cause, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
	if opener.conns[0].rollbacks != 1 {
		t.Errorf("expected rollback after timeout, got %d", opener.conns[0].rollbacks)
	}
}

func TestBroker_OpenFailure(t *testing.T) {
	opener := &fakeOpener{err: errors.New("password authentication failed")}
	b, _ := newTestBroker(t, entity.RolePatient, opener, 0)

	_, err := b.QueryMany(context.Background(), "SELECT 1")
	if !apperror.IsKind(err, apperror.KindDatabase) {
		t.Fatalf("expected database error, got %v", err)
	}
	if _, ok := b.Role(); ok {
		t.Error("expected no bound role after failed open")
	}
	if err := b.Close(context.Background()); err != nil {
		t.Errorf("close after failed open: %v", err)
	}
}

func TestBroker_CallProcedure(t *testing.T) {
	var got string
	var gotArgs []any
	opener := &fakeOpener{
		exec: func(_ context.Context, sql string, args []any) (*ResultSet, error) {
			got, gotArgs = sql, args
			return &ResultSet{Rows: []Row{}}, nil
		},
	}
	b, _ := newTestBroker(t, entity.RolePatient, opener, 0)

	err := b.CallProcedure(context.Background(), entity.ProcedureBookAppointment, int64(1), int64(2), int64(3), "2030-01-02", "09:30")
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if want := "CALL sp_book_appointment($1, $2, $3, $4, $5)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if len(gotArgs) != 5 {
		t.Errorf("expected 5 args, got %d", len(gotArgs))
	}
	if opener.conns[0].commits != 1 {
		t.Errorf("expected procedure call committed")
	}
}

func TestBroker_CallProcedureRejectsBadName(t *testing.T) {
	opener := &fakeOpener{}
	b, _ := newTestBroker(t, entity.RoleAdmin, opener, 0)

	for _, name := range []string{"", "sp; DROP TABLE patient", "1sp", "sp-book"} {
		if err := b.CallProcedure(context.Background(), name); !errors.Is(err, ErrInvalidProcedure) {
			t.Errorf("%q: expected ErrInvalidProcedure, got %v", name, err)
		}
	}
	if len(opener.conns) != 0 {
		t.Errorf("expected no connection for rejected names, got %d", len(opener.conns))
	}
}

func TestBroker_RaisedExceptionIsValidation(t *testing.T) {
	opener := &fakeOpener{
		exec: func(context.Context, string, []any) (*ResultSet, error) {
			return nil, &pgconn.PgError{Code: "P0001", Message: "Time slot already booked"}
		},
	}
	b, _ := newTestBroker(t, entity.RolePatient, opener, 0)

	err := b.CallProcedure(context.Background(), "sp_book_appointment", 1, 2, 3, "2030-01-01", "10:00")
	appErr, ok := apperror.As(err)
	if !ok || appErr.Kind != apperror.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if appErr.Message != "Time slot already booked" {
		t.Errorf("expected procedure message, got %q", appErr.Message)
	}
}

func TestBrokerFromContext(t *testing.T) {
	if _, err := BrokerFromContext(context.Background()); !errors.Is(err, ErrNoScope) {
		t.Errorf("expected ErrNoScope, got %v", err)
	}

	b, _ := newTestBroker(t, entity.RoleAdmin, &fakeOpener{}, 0)
	got, err := BrokerFromContext(WithBroker(context.Background(), b))
	if err != nil {
		t.Fatalf("expected broker, got %v", err)
	}
	if got != Transactor(b) {
		t.Error("expected the installed broker back")
	}
}

func TestVerifyCredentials(t *testing.T) {
	opener := &fakeOpener{}
	if err := VerifyCredentials(context.Background(), testRegistry(t), opener); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(opener.conns) != len(entity.Roles) {
		t.Fatalf("expected one connection per role, got %d", len(opener.conns))
	}
	for _, c := range opener.conns {
		if c.closes != 1 {
			t.Errorf("expected %s connection closed once, got %d", c.creds.Role, c.closes)
		}
	}

	failing := &fakeOpener{err: errors.New("role does not exist")}
	if err := VerifyCredentials(context.Background(), testRegistry(t), failing); err == nil {
		t.Error("expected verification error")
	}
}
