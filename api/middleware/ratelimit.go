package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

const (
	tierAuth    = "auth"
	tierAdmin   = "admin"
	tierGeneral = "general"
)

// rateLimitFor picks the tier, limit and window for a path
func (mw *Middleware) rateLimitFor(path string) (string, int, time.Duration) {
	rl := mw.cfg.RateLimit
	switch {
	case strings.HasPrefix(path, "/api/accounts/"):
		return tierAuth, rl.AuthLimit, rl.AuthWindow
	case strings.HasPrefix(path, "/api/admin/"):
		return tierAdmin, rl.AdminLimit, rl.AdminWindow
	default:
		return tierGeneral, rl.GeneralLimit, rl.GeneralWindow
	}
}

// getClientIP returns the request's client address without the port.
// chi's RealIP middleware has already applied proxy headers to RemoteAddr.
func getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimitMiddleware implements fixed window rate limiting per client and tier.
// It fails open when the counter store is unavailable.
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled || mw.limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" || r.URL.Path == "/" {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := getClientIP(r)
			tier, limit, window := mw.rateLimitFor(r.URL.Path)

			count, err := mw.limiter.IncrementRateLimit(r.Context(), tier, clientIP, window)
			if err != nil {
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("tier", tier),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(window).Unix(), 10))

			if count > int64(limit) {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("tier", tier),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				gecho.TooManyRequests(w,
					gecho.WithMessage("Rate limit exceeded. Please try again later."),
					gecho.WithData(map[string]any{
						"limit":       limit,
						"window":      window.String(),
						"retry_after": int(window.Seconds()),
					}),
					gecho.Send(),
				)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", int64(limit)-count))
			next.ServeHTTP(w, r)
		})
	}
}
