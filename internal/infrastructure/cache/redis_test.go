package cache

import (
	"bytes"
	"context"
	"errors"
	"log"
	"path"
	"strings"
	"testing"
	"time"

	"lawjobs/internal/config"
	"lawjobs/internal/domain/board"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_DisabledBypassesCalls(t *testing.T) {
	r := NewDisabled(nil)
	ctx := context.Background()

	assert.False(t, r.Available())
	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0))

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.InvalidateJobs(ctx))
	assert.True(t, errors.Is(r.Ping(ctx), ErrUnavailable))
	assert.ErrorIs(t, r.Publish(ctx, "ch", []byte("x")), ErrUnavailable)
	assert.ErrorIs(t, r.Subscribe(ctx, "ch", func([]byte) {}), ErrUnavailable)
}

func TestRedis_ObserveLogsOutageTransitions(t *testing.T) {
	var buf bytes.Buffer
	r := &Redis{logger: log.New(&buf, "", 0)}
	down := errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

	assert.ErrorIs(t, r.observe(down), down)
	assert.ErrorIs(t, r.observe(down), down)
	assert.ErrorIs(t, r.observe(redis.Nil), redis.Nil)
	assert.NoError(t, r.observe(nil))
	assert.NoError(t, r.observe(nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "connection refused")
	assert.Contains(t, lines[1], "recovered")
}

func TestClientOptions(t *testing.T) {
	opts, err := clientOptions(config.RedisConfig{Host: "cache", Port: "6380", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)

	opts, err = clientOptions(config.RedisConfig{URL: "redis://:secret@redis.internal:6379/2"})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	_, err = clientOptions(config.RedisConfig{URL: "http://nope"})
	assert.Error(t, err)
}

func TestSessionStore_MemoryFallback(t *testing.T) {
	s := NewSessionStore(NewDisabled(nil))
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	st := board.FilterState{StateFilter: "Georgia", CurrentPage: 2}
	require.NoError(t, s.Put(ctx, "u1", st))

	got, ok, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, st, got)

	now = now.Add(sessionTTL + time.Second)
	_, ok, err = s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok, "expired sessions are dropped")
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "favorites:abc", FavoritesKey("abc"))
	assert.Equal(t, "board:session:abc", SessionKey("abc"))
}

func TestJobBodyPatternsCoverCachedLists(t *testing.T) {
	matched := func(key string) bool {
		for _, p := range jobBodyPatterns {
			if ok, _ := path.Match(p, key); ok {
				return true
			}
		}
		return false
	}

	assert.True(t, matched(JobsListAllKey))
	assert.True(t, matched(FavoritesKey("7b1c9f0e-4a4d-4a57-9f0a-1d2a3b4c5d6e")))
	assert.False(t, matched(SessionKey("7b1c9f0e-4a4d-4a57-9f0a-1d2a3b4c5d6e")), "saved sessions hold no job rows")
	assert.False(t, matched("jobs:lock:list:all"))
}
