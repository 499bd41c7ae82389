// Package cooldown rate-limits user actions that must wait between attempts,
// such as resending a verification code.
package cooldown

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCoolingDown = errors.New("cooling down")

func IsErrCoolingDown(err error) bool { return errors.Is(err, ErrCoolingDown) }

// WaitError carries the time left before the next attempt.
type WaitError struct {
	Remaining time.Duration
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("cooling down: retry in %s", e.Remaining.Round(time.Second))
}

func (e *WaitError) Unwrap() error { return ErrCoolingDown }

type Store interface {
	// Acquire marks key for ttl. When the key is already marked it reports
	// false and the time left.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, time.Duration, error)
	Release(ctx context.Context, key string) error
}

type RedisStore struct {
	rdb    redis.Cmdable
	prefix string
}

func NewRedisStore(rdb redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, time.Duration, error) {
	k := s.prefix + key
	ok, err := s.rdb.SetNX(ctx, k, "1", ttl).Result()
	if err != nil {
		return false, 0, err
	}
	if ok {
		return true, 0, nil
	}
	left, err := s.rdb.TTL(ctx, k).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, 0, err
	}
	if left < 0 {
		left = ttl
	}
	return false, left, nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}

// MemoryStore is the single-instance fallback when no Redis is configured.
type MemoryStore struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{until: map[string]time.Time{}, now: time.Now}
}

func (s *MemoryStore) Acquire(_ context.Context, key string, ttl time.Duration) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if until, ok := s.until[key]; ok && now.Before(until) {
		return false, until.Sub(now), nil
	}
	s.until[key] = now.Add(ttl)

	// prune expired keys
	for k, until := range s.until {
		if !now.Before(until) {
			delete(s.until, k)
		}
	}
	return true, 0, nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.until, key)
	s.mu.Unlock()
	return nil
}

type Limiter struct {
	store Store
	ttl   time.Duration
}

func NewLimiter(store Store, ttl time.Duration) *Limiter {
	return &Limiter{store: store, ttl: ttl}
}

func (l *Limiter) TTL() time.Duration { return l.ttl }

// Acquire starts the cooldown for key, or returns a *WaitError when one is
// already running.
func (l *Limiter) Acquire(ctx context.Context, key string) error {
	ok, left, err := l.store.Acquire(ctx, normalize(key), l.ttl)
	if err != nil {
		return fmt.Errorf("cooldown acquire: %w", err)
	}
	if !ok {
		return &WaitError{Remaining: left}
	}
	return nil
}

// Release cancels the cooldown, used when the guarded action failed.
func (l *Limiter) Release(ctx context.Context, key string) error {
	return l.store.Release(ctx, normalize(key))
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
