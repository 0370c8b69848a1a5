package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenNotFound is returned when no token is stored for a session.
	ErrTokenNotFound = errors.New("auth: token not found")
	// ErrTokenExpired is returned when the stored token's exp has passed.
	ErrTokenExpired = errors.New("auth: token expired")
)

// TokenStore persists session tokens by key.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, token string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Session is the bearer token of one signed-in account.
type Session struct {
	store TokenStore
	opts  Options
	now   func() time.Time
}

// NewSession binds a store. A nil store falls back to an in-memory one.
func NewSession(store TokenStore, opts Options) *Session {
	opts.Defaults()
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{store: store, opts: opts, now: time.Now}
}

// Key returns the storage key of the session token.
func (s *Session) Key() string {
	return s.opts.KeyPrefix + s.opts.Name
}

// SetToken stores token. The stored TTL is the smaller of Options.TTL and the
// time left until the token's exp claim, when either is known.
func (s *Session) SetToken(ctx context.Context, token string) error {
	ttl := s.opts.TTL
	if exp, ok := ExpiresAt(token); ok {
		left := exp.Sub(s.now())
		if left <= 0 {
			return ErrTokenExpired
		}
		if ttl <= 0 || left < ttl {
			ttl = left
		}
	}
	if err := s.store.Set(ctx, s.Key(), token, ttl); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Token returns the stored token. An expired token is removed and reported as
// ErrTokenExpired.
func (s *Session) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, s.Key())
	if err != nil {
		return "", err
	}
	if exp, ok := ExpiresAt(token); ok && !s.now().Add(s.opts.Leeway).Before(exp) {
		_ = s.store.Delete(ctx, s.Key())
		return "", ErrTokenExpired
	}
	return token, nil
}

// Clear removes the stored token.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.Key())
}

// ExpiresAt reads the exp claim without verifying the signature; the server
// remains the authority on validity.
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// MemoryStore keeps tokens in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	token    string
	expireAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[key]
	if !ok {
		return "", ErrTokenNotFound
	}
	if !item.expireAt.IsZero() && !m.now().Before(item.expireAt) {
		delete(m.items, key)
		return "", ErrTokenNotFound
	}
	return item.token, nil
}

func (m *MemoryStore) Set(_ context.Context, key, token string, ttl time.Duration) error {
	item := memoryItem{token: token}
	if ttl > 0 {
		item.expireAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = item
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}
