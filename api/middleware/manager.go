package middleware

import (
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"time"

	"github.com/MonkyMars/gecho"
)

// Authenticator resolves bearer token keys to users.
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (*tables.User, error)
}

// RateLimiter counts requests per client within a window.
type RateLimiter interface {
	IncrementRateLimit(ctx context.Context, tier, clientKey string, window time.Duration) (int64, error)
}

type Middleware struct {
	logger        *gecho.Logger
	cfg           *structs.Config
	authenticator Authenticator
	limiter       RateLimiter
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, authenticator Authenticator, limiter RateLimiter) *Middleware {
	return &Middleware{
		logger:        logger,
		cfg:           cfg,
		authenticator: authenticator,
		limiter:       limiter,
	}
}
