// Package session keeps authenticated sessions in Redis. The client only ever
// holds a signed pointer to a session; the identity lives here.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/identity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID          string      `json:"id"`
	UserID      int64       `json:"user_id"`
	Email       string      `json:"email"`
	Role        entity.Role `json:"role"`
	ReferenceID *int64      `json:"reference_id,omitempty"`
	Remember    bool        `json:"remember"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// Identity converts the stored session into the request identity.
func (s *Session) Identity() identity.Identity {
	return identity.Identity{
		Authenticated: true,
		UserID:        s.UserID,
		Email:         s.Email,
		Role:          s.Role,
		ReferenceID:   s.ReferenceID,
		SessionID:     s.ID,
	}
}

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(id string) string {
	return keyPrefix + id
}

// Create stores a new session for user that expires after ttl.
func (s *Store) Create(ctx context.Context, user *entity.User, remember bool, ttl time.Duration) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		ReferenceID: user.ReferenceID,
		Remember:    remember,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, key(sess.ID), data, ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
