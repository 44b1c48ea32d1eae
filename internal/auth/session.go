package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
)

// Store keeps sessions server-side, keyed by the opaque cookie token.
// Get and Save fail with dom.ErrNotFound for unknown or expired tokens.
type Store interface {
	Create(ctx context.Context, sess dom.Session) (string, error)
	Get(ctx context.Context, id string) (dom.Session, error)
	Save(ctx context.Context, id string, sess dom.Session) error
	Delete(ctx context.Context, id string) error
}

// RedisStore manages sessions in Redis as JSON values with a sliding TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a new session store.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Create stores a new session and returns its ID.
func (s *RedisStore) Create(ctx context.Context, sess dom.Session) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	return id, nil
}

// Get loads a session and extends its lifetime.
func (s *RedisStore) Get(ctx context.Context, id string) (dom.Session, error) {
	b, err := s.rdb.GetEx(ctx, sessionKeyPrefix+id, s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return dom.Session{}, dom.ErrNotFound
	}
	if err != nil {
		return dom.Session{}, fmt.Errorf("session get: %w", err)
	}
	var sess dom.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return dom.Session{}, fmt.Errorf("session decode: %w", err)
	}
	return sess, nil
}

// Save overwrites an existing session. A session deleted in the meantime is
// not brought back.
func (s *RedisStore) Save(ctx context.Context, id string, sess dom.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetXX(ctx, sessionKeyPrefix+id, b, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	if !ok {
		return dom.ErrNotFound
	}
	return nil
}

// Delete removes a session by ID.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
