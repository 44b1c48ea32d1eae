package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func TestRedisStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Hour)

	id, err := s.Create(ctx, dom.Session{UserID: "u-1"})
	require.NoError(t, err)
	assert.Len(t, id, 32)
	assert.True(t, mr.Exists(sessionKeyPrefix+id))

	sess, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "u-1", sess.UserID)

	sess.Flashes = []string{"hello"}
	require.NoError(t, s.Save(ctx, id, sess))
	sess, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, sess.Flashes)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, dom.ErrNotFound)
	assert.ErrorIs(t, s.Save(ctx, id, sess), dom.ErrNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Minute)

	id, err := s.Create(ctx, dom.Session{})
	require.NoError(t, err)

	mr.FastForward(30 * time.Second)
	_, err = s.Get(ctx, id)
	require.NoError(t, err)

	// Get slid the expiry forward.
	mr.FastForward(45 * time.Second)
	_, err = s.Get(ctx, id)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

func TestRedisStore_Unreachable(t *testing.T) {
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	s := NewRedisStore(rdb, time.Minute)

	_, err := s.Get(ctx, "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, dom.ErrNotFound)
}

func TestMemStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemStore(time.Minute)
	s.now = func() time.Time { return now }

	id, err := s.Create(ctx, dom.Session{Flashes: []string{"a"}})
	require.NoError(t, err)

	sess, err := s.Get(ctx, id)
	require.NoError(t, err)
	sess.Flashes[0] = "mutated"
	again, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Flashes)

	now = now.Add(2 * time.Minute)
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, dom.ErrNotFound)
	assert.ErrorIs(t, s.Save(ctx, id, dom.Session{}), dom.ErrNotFound)

	id, err = s.Create(ctx, dom.Session{})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, dom.ErrNotFound)
}
