package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"lawjobs/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	JobsListAllKey   = "jobs:list:all"
	jobsListPattern  = "jobs:list:*"
	favoritesPattern = "favorites:*"
)

// jobBodyPatterns covers every key that caches job rows.
var jobBodyPatterns = []string{jobsListPattern, favoritesPattern}

var ErrUnavailable = errors.New("redis unavailable")

func FavoritesKey(userID string) string { return "favorites:" + userID }

type Redis struct {
	client *redis.Client
	logger *log.Logger
	ttl    time.Duration

	// degraded is set after a failed command and cleared by the next success,
	// so an outage is logged once when it starts and once when it ends.
	degraded atomic.Bool
}

// NewRedis connects and pings once. When redis cannot be reached the returned
// value bypasses every operation instead of failing callers.
func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	opts, err := clientOptions(cfg)
	if err != nil {
		if logger != nil {
			logger.Printf("[Cache] Invalid redis config, bypassing cache: %v", err)
		}
		return &Redis{logger: logger, ttl: cfg.TTL}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		return &Redis{client: nil, logger: logger, ttl: cfg.TTL}
	}

	return &Redis{client: client, logger: logger, ttl: cfg.TTL}
}

// NewDisabled returns a cache that bypasses every call.
func NewDisabled(logger *log.Logger) *Redis {
	return &Redis{logger: logger}
}

func clientOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if u := strings.TrimSpace(cfg.URL); u != "" {
		return redis.ParseURL(u)
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: cfg.Password,
		DB:       0,
	}, nil
}

func (r *Redis) Available() bool {
	return !r.isUnavailable()
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

// observe records the outcome of a command. redis.Nil is a cache miss, not
// a failure.
func (r *Redis) observe(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		if r.degraded.CompareAndSwap(true, false) && r.logger != nil {
			r.logger.Printf("[Cache] Redis recovered")
		}
		return err
	}
	if r.degraded.CompareAndSwap(false, true) && r.logger != nil {
		r.logger.Printf("[Cache] Redis command failed, serving from source: %v", err)
	}
	return err
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err := r.observe(err); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key. A non-positive ttl uses the configured default.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.defaultTTL()
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.observe(r.client.Set(ctx, key, b, ttl).Err())
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.isUnavailable() {
		return nil
	}
	return r.observe(r.client.Del(ctx, key).Err())
}

func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.isUnavailable() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	return r.observe(unlinkMatching(ctx, r.client, pattern))
}

// InvalidateJobs drops every cached job list after an import changed the
// table. Per-user favorites hold job rows too, so they go with it.
func (r *Redis) InvalidateJobs(ctx context.Context) error {
	var errs []error
	for _, p := range jobBodyPatterns {
		if err := r.DeleteByPattern(ctx, p); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	return ok, r.observe(err)
}

func (r *Redis) Publish(ctx context.Context, channel string, payload []byte) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	return r.observe(r.client.Publish(ctx, channel, payload).Err())
}

// Subscribe delivers every message on channel to fn until ctx is done.
func (r *Redis) Subscribe(ctx context.Context, channel string, fn func(payload []byte)) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	sub := r.client.Subscribe(ctx, channel)
	defer func() {
		_ = sub.Close()
	}()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn([]byte(msg.Payload))
		}
	}
}

func (r *Redis) defaultTTL() time.Duration {
	if r.ttl > 0 {
		return r.ttl
	}
	return 600 * time.Second
}

const scanBatch = 200

// unlinkMatching removes keys matching pattern in SCAN-sized batches. UNLINK
// frees memory off the main redis thread.
func unlinkMatching(ctx context.Context, rdb *redis.Client, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rdb.Unlink(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("unlink %d keys matching %s: %w", len(keys), pattern, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
