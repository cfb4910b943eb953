package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthsystem/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestKey(t *testing.T) {
	if got := key("abc"); got != "session:abc" {
		t.Errorf("expected session:abc, got %s", got)
	}
}

func TestSessionIdentity(t *testing.T) {
	ref := int64(12)
	s := &Session{ID: "sid-1", UserID: 4, Email: "doc@clinic.test", Role: entity.RolePhysician, ReferenceID: &ref}

	id := s.Identity()
	if !id.Authenticated {
		t.Fatal("expected authenticated identity")
	}
	if id.Role != entity.RolePhysician || id.UserID != 4 || id.SessionID != "sid-1" {
		t.Errorf("unexpected identity %+v", id)
	}
	if id.ReferenceID == nil || *id.ReferenceID != 12 {
		t.Errorf("expected reference 12, got %v", id.ReferenceID)
	}
}

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client), mr
}

func TestStore_RoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	ref := int64(7)
	user := &entity.User{ID: 3, Email: "ann@example.com", Role: entity.RolePatient, ReferenceID: &ref}

	created, err := store.Create(ctx, user, true, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ttl := mr.TTL(key(created.ID)); ttl != time.Hour {
		t.Errorf("expected 1h ttl, got %v", ttl)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != 3 || got.Role != entity.RolePatient || !got.Remember {
		t.Errorf("unexpected session %+v", got)
	}
	if got.ReferenceID == nil || *got.ReferenceID != 7 {
		t.Errorf("expected reference 7, got %v", got.ReferenceID)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, created.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Errorf("deleting twice: %v", err)
	}
}

func TestStore_Expires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, &entity.User{ID: 1, Role: entity.RoleAdmin}, false, time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, created.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected expired session to be gone, got %v", err)
	}
}

func TestStore_GetRedisDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), "anything")
	if err == nil || errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected a connection error, got %v", err)
	}
}
