package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"healthsystem/config"
	"healthsystem/internal/domain/entity"
	"healthsystem/internal/identity"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/internal/infrastructure/session"
	"healthsystem/pkg/jwt"
	"healthsystem/pkg/response"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func withIdentity(r *http.Request, id identity.Identity) *http.Request {
	return r.WithContext(identity.WithIdentity(r.Context(), id))
}

func TestRequireRole(t *testing.T) {
	physicianOnly := RequirePhysician(ok)

	tests := []struct {
		name       string
		id         identity.Identity
		wantStatus int
		wantError  string
	}{
		{"anonymous", identity.Anonymous(), http.StatusUnauthorized, "Authentication required"},
		{"wrong role", identity.Identity{Authenticated: true, Role: entity.RolePatient}, http.StatusForbidden, "Physician access required"},
		{"right role", identity.Identity{Authenticated: true, Role: entity.RolePhysician}, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			physicianOnly.ServeHTTP(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/api/data/patients", nil), tt.id))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantError != "" {
				if body := decode(t, rec); body.Error != tt.wantError || body.Success {
					t.Errorf("body = %+v", body)
				}
			}
		})
	}
}

func TestRoleMessage(t *testing.T) {
	if got := roleMessage([]entity.Role{entity.RolePhysician, entity.RoleAdmin}); got != "Physician or admin access required" {
		t.Errorf("got %q", got)
	}
}

type fakeLoader struct {
	sessions map[string]*session.Session
}

func (f *fakeLoader) Get(ctx context.Context, id string) (*session.Session, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, session.ErrSessionNotFound
}

func TestLoadSession(t *testing.T) {
	jwtService := jwt.NewJWTService(config.SessionConfig{Secret: "secret", CookieName: "hs_session"})
	ref := int64(4)
	loader := &fakeLoader{sessions: map[string]*session.Session{
		"s1": {ID: "s1", UserID: 9, Email: "a@example.com", Role: entity.RolePhysician, ReferenceID: &ref},
	}}
	m := NewAuthMiddleware(jwtService, loader, quietLogger())

	token := func(sid string, uid int64) string {
		tok, err := jwtService.GenerateSessionToken(sid, uid, time.Hour)
		if err != nil {
			t.Fatal(err)
		}
		return tok
	}

	tests := []struct {
		name   string
		cookie string
		want   identity.Identity
	}{
		{"no cookie", "", identity.Anonymous()},
		{"garbage", "not-a-token", identity.Anonymous()},
		{"unknown session", token("s2", 9), identity.Anonymous()},
		{"user mismatch", token("s1", 10), identity.Anonymous()},
		{"valid", token("s1", 9), identity.Identity{
			Authenticated: true, UserID: 9, Email: "a@example.com",
			Role: entity.RolePhysician, ReferenceID: &ref, SessionID: "s1",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got identity.Identity
			h := m.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = identity.FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "hs_session", Value: tt.cookie})
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got.Authenticated != tt.want.Authenticated || got.UserID != tt.want.UserID ||
				got.Role != tt.want.Role || got.SessionID != tt.want.SessionID {
				t.Errorf("identity = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	m := NewAuthMiddleware(nil, nil, quietLogger())

	rec := httptest.NewRecorder()
	m.RequireAuth(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/current-user", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

type countingConn struct {
	mu     sync.Mutex
	closes int
}

func (c *countingConn) Query(ctx context.Context, sql string, args ...any) (*database.ResultSet, error) {
	return &database.ResultSet{Rows: []database.Row{{"n": int64(1)}}}, nil
}

func (c *countingConn) Begin(ctx context.Context) (database.Tx, error) {
	return nil, context.Canceled
}

func (c *countingConn) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

type countingOpener struct {
	opened []*countingConn
	roles  []entity.Role
}

func (o *countingOpener) Open(ctx context.Context, creds database.CredentialSet) (database.Conn, error) {
	c := &countingConn{}
	o.opened = append(o.opened, c)
	o.roles = append(o.roles, creds.Role)
	return c, nil
}

func newTestFactory(t *testing.T, opener database.Opener) *database.Factory {
	t.Helper()
	registry, err := database.NewRegistry(config.DBConfig{
		Patient:   config.DBCredential{User: "hs_patient", Password: "p"},
		Physician: config.DBCredential{User: "hs_physician", Password: "p"},
		Admin:     config.DBCredential{User: "hs_admin", Password: "p"},
	})
	if err != nil {
		t.Fatal(err)
	}
	resolver, err := identity.NewResolver("admin", quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	return database.NewFactory(registry, resolver, opener, time.Second, quietLogger())
}

func TestConnectionScope(t *testing.T) {
	opener := &countingOpener{}
	scope := ConnectionScope(newTestFactory(t, opener))

	query := scope(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		db, err := database.BrokerFromContext(r.Context())
		if err != nil {
			t.Fatalf("no broker: %v", err)
		}
		for i := 0; i < 3; i++ {
			if _, err := db.QueryMany(r.Context(), "SELECT 1"); err != nil {
				t.Fatalf("query: %v", err)
			}
		}
	}))

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/patients", nil),
		identity.Identity{Authenticated: true, Role: entity.RolePatient})
	query.ServeHTTP(httptest.NewRecorder(), req)

	if len(opener.opened) != 1 {
		t.Fatalf("opened %d connections, want 1", len(opener.opened))
	}
	if opener.roles[0] != entity.RolePatient {
		t.Errorf("role = %s, want patient", opener.roles[0])
	}
	if opener.opened[0].closes != 1 {
		t.Errorf("closes = %d, want 1", opener.opened[0].closes)
	}

	idle := scope(ok)
	idle.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if len(opener.opened) != 1 {
		t.Errorf("a request that never queries must not open a connection")
	}
}

func TestConnectionScope_AnonymousUsesFallback(t *testing.T) {
	opener := &countingOpener{}
	h := ConnectionScope(newTestFactory(t, opener))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		db, _ := database.BrokerFromContext(r.Context())
		db.QueryMany(r.Context(), "SELECT 1")
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	if len(opener.roles) != 1 || opener.roles[0] != entity.RoleAdmin {
		t.Errorf("roles = %v, want [admin]", opener.roles)
	}
}

func TestForceRole_OverridesSession(t *testing.T) {
	opener := &countingOpener{}
	h := ForceRole(entity.RoleAdmin)(ConnectionScope(newTestFactory(t, opener))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		db, _ := database.BrokerFromContext(r.Context())
		db.QueryMany(r.Context(), "SELECT 1")
	})))

	req := withIdentity(httptest.NewRequest(http.MethodPost, "/auth/login", nil),
		identity.Identity{Authenticated: true, Role: entity.RolePatient})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if len(opener.roles) != 1 || opener.roles[0] != entity.RoleAdmin {
		t.Errorf("roles = %v, want [admin]", opener.roles)
	}
}

func TestConnectionScope_ClosesOnPanic(t *testing.T) {
	opener := &countingOpener{}
	h := Recovery(quietLogger())(ConnectionScope(newTestFactory(t, opener))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		db, _ := database.BrokerFromContext(r.Context())
		db.QueryMany(r.Context(), "SELECT 1")
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if len(opener.opened) != 1 || opener.opened[0].closes != 1 {
		t.Errorf("connection must be closed after a panic")
	}
}

func TestCORS(t *testing.T) {
	h := NewCORSMiddleware([]string{"http://localhost:3000"}).Handle(ok)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" ||
		rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Errorf("headers = %v", rec.Header())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be allowed")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d", rec.Code)
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestLogger(quietLogger())(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}
