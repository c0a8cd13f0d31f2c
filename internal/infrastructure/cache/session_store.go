package cache

import (
	"context"
	"sync"
	"time"

	"lawjobs/internal/domain/board"
)

const sessionTTL = 30 * 24 * time.Hour

func SessionKey(userID string) string { return "board:session:" + userID }

type memSession struct {
	state     board.FilterState
	expiresAt time.Time
}

// SessionStore keeps each user's board filters in redis and falls back to
// process memory while redis is unavailable.
type SessionStore struct {
	redis *Redis
	now   func() time.Time

	mu  sync.Mutex
	mem map[string]memSession
}

func NewSessionStore(r *Redis) *SessionStore {
	return &SessionStore{redis: r, now: time.Now, mem: map[string]memSession{}}
}

func (s *SessionStore) Get(ctx context.Context, userID string) (board.FilterState, bool, error) {
	if s.redis.Available() {
		var st board.FilterState
		hit, err := s.redis.GetJSON(ctx, SessionKey(userID), &st)
		if err == nil {
			return st, hit, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.mem[userID]
	if !ok {
		return board.FilterState{}, false, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.mem, userID)
		return board.FilterState{}, false, nil
	}
	return e.state, true, nil
}

func (s *SessionStore) Put(ctx context.Context, userID string, st board.FilterState) error {
	if s.redis.Available() {
		if err := s.redis.SetJSON(ctx, SessionKey(userID), st, sessionTTL); err == nil {
			return nil
		}
	}

	s.mu.Lock()
	s.mem[userID] = memSession{state: st, expiresAt: s.now().Add(sessionTTL)}
	s.mu.Unlock()
	return nil
}
