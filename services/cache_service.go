package services

import (
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

const (
	tokenUserKeyPrefix  = "auth:token:"
	bookDetailKeyPrefix = "book:detail:"
	rateLimitKeyPrefix  = "ratelimit:"
	cacheMaxRetries     = 3
)

// NewRedisClient builds a pooled client from the cache configuration.
// It returns nil when caching is disabled.
func NewRedisClient(cfg *structs.CacheConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		// Connection pool settings
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,

		// Timeouts
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		// Retry settings
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
	})
}

// CacheService provides Redis caching with retry logic. With a nil client
// every read is a miss and every write a no-op.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config, client *redis.Client) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: client,
	}
}

func (cs *CacheService) Enabled() bool {
	return cs.client != nil
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if cs.client != nil {
		return cs.client.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff and jitter
func (cs *CacheService) withRetry(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt <= cacheMaxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == cacheMaxRetries || !isRetryableRedisError(err) {
			break
		}

		backoff := min(100*time.Millisecond*(1<<attempt), 2*time.Second)
		wait := backoff/2 + rand.N(backoff/2+1)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("redis operation failed: %w", lastErr)
}

// isRetryableRedisError determines if an error is worth retrying
func isRetryableRedisError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	errStr := err.Error()
	for _, retryable := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	} {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}

// Set sets a key with TTL
func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if cs.client == nil {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	})
}

// Get retrieves a key; a missing key yields "" and no error.
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	if cs.client == nil {
		return "", nil
	}
	var result string
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	})
	return result, err
}

// Delete removes keys
func (cs *CacheService) Delete(ctx context.Context, keys ...string) error {
	if cs.client == nil || len(keys) == 0 {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Del(ctx, keys...).Err()
	})
}

func tokenUserKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return tokenUserKeyPrefix + hex.EncodeToString(sum[:])
}

func bookDetailKey(id int64) string {
	return fmt.Sprintf("%s%d", bookDetailKeyPrefix, id)
}

// GetTokenUser returns the user cached for a bearer key, or nil on a miss.
func (cs *CacheService) GetTokenUser(ctx context.Context, key string) (*tables.User, error) {
	return getJSON[tables.User](ctx, cs, tokenUserKey(key))
}

func (cs *CacheService) SetTokenUser(ctx context.Context, key string, user *tables.User) error {
	cached := *user
	cached.PasswordHash = ""
	cached.ActivationCode = ""
	return setJSON(ctx, cs, tokenUserKey(key), &cached, cs.config.Auth.CacheUserTTL)
}

// GetBookDetail returns the viewer-independent detail of a book, or nil on a miss.
func (cs *CacheService) GetBookDetail(ctx context.Context, id int64) (*structs.BookDetail, error) {
	return getJSON[structs.BookDetail](ctx, cs, bookDetailKey(id))
}

func (cs *CacheService) SetBookDetail(ctx context.Context, detail *structs.BookDetail) error {
	ttl := cs.config.Cache.BookDetailTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return setJSON(ctx, cs, bookDetailKey(detail.ID), detail, ttl)
}

func (cs *CacheService) InvalidateBook(ctx context.Context, id int64) error {
	return cs.Delete(ctx, bookDetailKey(id))
}

// IncrementRateLimit bumps the counter for a client in a tier and returns the new count.
// The window starts with the first hit.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, tier, clientKey string, window time.Duration) (int64, error) {
	if cs.client == nil {
		return 0, nil
	}
	key := rateLimitKeyPrefix + tier + ":" + clientKey
	var count int64
	err := cs.withRetry(ctx, func() error {
		pipe := cs.client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		count = incr.Val()
		return nil
	})
	return count, err
}

// Ping checks Redis connectivity
func (cs *CacheService) Ping(ctx context.Context) error {
	if cs.client == nil {
		return errors.New("cache is disabled")
	}
	return cs.client.Ping(ctx).Err()
}

// GetConnectionStats returns pool statistics for monitoring
func (cs *CacheService) GetConnectionStats() map[string]any {
	if cs.client == nil {
		return map[string]any{"enabled": false}
	}
	stats := cs.client.PoolStats()
	return map[string]any{
		"enabled":     true,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// DeletePattern removes all keys matching a pattern using SCAN
func (cs *CacheService) DeletePattern(ctx context.Context, pattern string) (int, error) {
	if cs.client == nil {
		return 0, nil
	}
	deleted := 0
	err := cs.withRetry(ctx, func() error {
		var cursor uint64
		for {
			keys, next, err := cs.client.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			if len(keys) > 0 {
				if err := cs.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("delete failed: %w", err)
				}
				deleted += len(keys)
			}
			cursor = next
			if cursor == 0 {
				return nil
			}
		}
	})
	return deleted, err
}

// ClearBookCaches drops every cached book detail.
func (cs *CacheService) ClearBookCaches(ctx context.Context) (int, error) {
	return cs.DeletePattern(ctx, bookDetailKeyPrefix+"*")
}

func setJSON[T any](ctx context.Context, cs *CacheService, key string, value *T, ttl time.Duration) error {
	if cs.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(ctx, key, data, ttl)
}

func getJSON[T any](ctx context.Context, cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, nil // not found in cache
	}

	var result T
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
