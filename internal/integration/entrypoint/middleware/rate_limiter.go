package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxRequests is the default number of allowed requests per window.
	defaultMaxRequests = 100
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 15 * time.Minute

	redisKeyPrefix = "ratelimit:"
)

// RateLimitStore counts hits per key inside a fixed window.
type RateLimitStore interface {
	// Hit increments the counter for key and returns the new count together
	// with the time the current window resets.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	hits      int64
	resetTime time.Time
}

// MemoryStore keeps counters in process memory. Expired entries are swept
// from Hit at most once per window.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]*rateLimitEntry
	nextSweep time.Time
	now       func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// Hit implements RateLimitStore.
func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !now.Before(s.nextSweep) {
		s.evictExpired(now)
		s.nextSweep = now.Add(window)
	}

	entry, exists := s.entries[key]
	if !exists || !now.Before(entry.resetTime) {
		entry = &rateLimitEntry{resetTime: now.Add(window)}
		s.entries[key] = entry
	}
	entry.hits++

	return entry.hits, entry.resetTime, nil
}

func (s *MemoryStore) evictExpired(now time.Time) {
	for key, entry := range s.entries {
		if !now.Before(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// RedisStore shares counters between instances through Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Hit implements RateLimitStore with INCR and a PEXPIRE set on the first hit.
func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	redisKey := redisKeyPrefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	remaining := ttl.Val()
	if incr.Val() == 1 || remaining < 0 {
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to set rate limit window: %w", err)
		}
		remaining = window
	}

	return incr.Val(), time.Now().Add(remaining), nil
}

// RateLimiter provides IP-based fixed window rate limiting.
type RateLimiter struct {
	store          RateLimitStore
	maxRequests    int
	windowDuration time.Duration
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter(store RateLimitStore) *RateLimiter {
	return NewRateLimiterWithConfig(store, defaultMaxRequests, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
func NewRateLimiterWithConfig(store RateLimitStore, maxRequests int, windowDuration time.Duration) *RateLimiter {
	if store == nil {
		store = NewMemoryStore()
	}
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	return &RateLimiter{
		store:          store,
		maxRequests:    maxRequests,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// Store failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		hits, resetTime, err := rl.store.Hit(c.Request.Context(), clientIP, rl.windowDuration)
		if err != nil {
			slog.Warn("Rate limit store unavailable", "error", err)
			c.Next()
			return
		}

		remaining := int64(rl.maxRequests) - hits
		if remaining < 0 {
			remaining = 0
		}
		c.Header("RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Header("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("RateLimit-Reset", strconv.FormatInt(int64(time.Until(resetTime).Seconds()), 10))

		if hits > int64(rl.maxRequests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Failure(
				"Too many requests. Please try again after some time.",
				string(domainerror.ErrCodeRateLimited),
			))
			return
		}

		c.Next()
	}
}
