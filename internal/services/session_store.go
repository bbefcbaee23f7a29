package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/pkg/cache"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one admin's dashboard session: the upstream API cookie it
// authenticates with and the admin user it belongs to.
type Session struct {
	ID             string      `json:"id"`
	UpstreamCookie string      `json:"upstreamCookie"`
	User           models.User `json:"user"`
	CreatedAt      time.Time   `json:"createdAt"`
	ExpiresAt      time.Time   `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions in Redis so they survive restarts and
// can be shared across instances.
type RedisSessionStore struct {
	cache *cache.RedisCache
}

func NewRedisSessionStore(c *cache.RedisCache) *RedisSessionStore {
	return &RedisSessionStore{cache: c}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	if err := s.cache.Set(ctx, sessionKey(session.ID), session, ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	var session Session
	if err := s.cache.Get(ctx, sessionKey(id), &session); err != nil {
		if cache.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, sessionKey(id))
}

// MemorySessionStore is the fallback when no Redis host is configured.
// Sessions live only as long as the process.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Session)}
}

func (s *MemorySessionStore) Save(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
