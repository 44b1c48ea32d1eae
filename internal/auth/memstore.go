package auth

import (
	"context"
	"slices"
	"sync"
	"time"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
)

// MemStore keeps sessions in process memory. Used when Redis is not configured.
type MemStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memEntry
}

type memEntry struct {
	sess      dom.Session
	expiresAt time.Time
}

func NewMemStore(ttl time.Duration) *MemStore {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &MemStore{ttl: ttl, now: time.Now, sessions: make(map[string]memEntry)}
}

func (s *MemStore) Create(ctx context.Context, sess dom.Session) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.sessions[id] = memEntry{sess: clone(sess), expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (dom.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok || !s.now().Before(e.expiresAt) {
		delete(s.sessions, id)
		return dom.Session{}, dom.ErrNotFound
	}
	e.expiresAt = s.now().Add(s.ttl)
	s.sessions[id] = e
	return clone(e.sess), nil
}

func (s *MemStore) Save(ctx context.Context, id string, sess dom.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok || !s.now().Before(e.expiresAt) {
		delete(s.sessions, id)
		return dom.ErrNotFound
	}
	s.sessions[id] = memEntry{sess: clone(sess), expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// sweep drops expired entries; caller holds mu.
func (s *MemStore) sweep() {
	now := s.now()
	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func clone(sess dom.Session) dom.Session {
	sess.Flashes = slices.Clone(sess.Flashes)
	return sess
}
