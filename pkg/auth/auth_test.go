package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goden-Gun/httpcall-lib/pkg/codes"
	"github.com/Goden-Gun/httpcall-lib/pkg/config"
	"github.com/Goden-Gun/httpcall-lib/pkg/interceptor"
	"github.com/Goden-Gun/httpcall-lib/pkg/viewchange"
)

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "42", ExpiresAt: jwt.NewNumericDate(exp)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSessionTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil, Options{Name: "alice"})
	assert.Equal(t, DefaultKeyPrefix+"alice", s.Key())

	_, err := s.Token(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	token := signToken(t, time.Now().Add(time.Hour))
	require.NoError(t, s.SetToken(ctx, token))
	got, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, got)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Token(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	assert.ErrorIs(t, s.SetToken(ctx, signToken(t, time.Now().Add(-time.Minute))), ErrTokenExpired)
}

func TestSessionLeewayExpiresEarly(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := NewSession(store, Options{Leeway: 10 * time.Minute})

	require.NoError(t, s.SetToken(ctx, signToken(t, time.Now().Add(5*time.Minute))))
	_, err := s.Token(ctx)
	assert.ErrorIs(t, err, ErrTokenExpired)
	_, err = store.Get(ctx, s.Key())
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestOpaqueTokenHasNoExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewMemoryStore(), Options{})
	require.NoError(t, s.SetToken(ctx, "opaque-token"))
	got, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", got)

	_, ok := ExpiresAt("opaque-token")
	assert.False(t, ok)
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemoryStore()
	m.now = func() time.Time { return now }
	require.NoError(t, m.Set(ctx, "k", "v", time.Second))

	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	now = now.Add(2 * time.Second)
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.SessionConfig{RefreshLeeway: 30})
	assert.Equal(t, 30*time.Second, opts.Leeway)
	assert.Equal(t, "httpcall:session:", opts.KeyPrefix)
}

func TestBearerMiddleware(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
	}))
	defer srv.Close()

	s := NewSession(NewMemoryStore(), Options{})
	client := resty.New().OnBeforeRequest(BearerMiddleware(s))

	_, err := client.R().Get(srv.URL)
	require.NoError(t, err)

	token := signToken(t, time.Now().Add(time.Hour))
	require.NoError(t, s.SetToken(context.Background(), token))
	_, err = client.R().Get(srv.URL)
	require.NoError(t, err)

	_, err = client.R().SetHeader("Authorization", "Basic abc").Get(srv.URL)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", "Bearer " + token, "Basic abc"}, seen)
}

func TestReauthRuleThroughChain(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewMemoryStore(), Options{})
	require.NoError(t, s.SetToken(ctx, "opaque"))

	var expired []codes.ReturnCode
	rule := NewReauthRule(s, WithOnExpired(func(_ context.Context, code codes.ReturnCode, _ string) {
		expired = append(expired, code)
	}))
	chain := interceptor.NewChain(rule)

	var events []viewchange.Event
	emit := viewchange.EmitterFunc(func(e viewchange.Event) { events = append(events, e) })

	require.True(t, chain.Route(ctx, codes.ErrAuthExpired.Code, "", emit))
	assert.Equal(t, []codes.ReturnCode{"AUTH_EXPIRED"}, expired)
	_, err := s.Token(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)
	require.Len(t, events, 1)
	assert.Equal(t, viewchange.KindToast, events[0].Kind)
	assert.Equal(t, codes.ErrAuthExpired.Message, events[0].Message)

	assert.False(t, chain.Route(ctx, "1001", "", emit))

	custom := NewReauthRule(nil, WithReauthCodes("401"))
	assert.True(t, custom.Applies("401"))
	assert.False(t, custom.Applies("AUTH_EXPIRED"))
}

type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttls map[string]time.Duration
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisTokenStore(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
	store := NewRedisTokenStore(fake)
	assert.Nil(t, NewRedisTokenStore(nil))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	s := NewSession(store, Options{TTL: time.Minute})
	require.NoError(t, s.SetToken(ctx, signToken(t, time.Now().Add(time.Hour))))
	assert.Equal(t, time.Minute, fake.ttls[s.Key()])

	_, err = s.Token(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, fake.data)
}
