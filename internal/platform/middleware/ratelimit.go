package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig tunes the per-client request allowance.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig allows sustained polling of the reporting
// endpoints while still absorbing a dashboard refresh burst.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// RateLimit returns middleware enforcing a token-bucket limit per client
// IP. Rejected requests carry Retry-After so scheduling clients can back
// off instead of hammering the optimizer.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	limiter := newClientLimiter(cfg.RequestsPerSecond, cfg.BurstSize)
	limitHeader := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', -1, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, remaining, retryAfter := limiter.take(c.RealIP())

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limitHeader)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !allowed {
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

// clientLimiter tracks one continuously refilling token bucket per client
// address. Buckets are created on first sight and refilled lazily on each
// take, so idle clients cost nothing between requests.
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*bucket
	rate    float64
	burst   float64
}

type bucket struct {
	tokens float64
	last   time.Time
}

func newClientLimiter(rate float64, burst int) *clientLimiter {
	return &clientLimiter{
		clients: make(map[string]*bucket),
		rate:    rate,
		burst:   float64(burst),
	}
}

// take refills the client's bucket for the elapsed time and attempts to
// spend one token. It reports whether the request may proceed, the whole
// tokens left, and the seconds until a token is available again.
func (l *clientLimiter) take(client string) (allowed bool, remaining, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.clients[client]
	if !ok {
		b = &bucket{tokens: l.burst, last: now}
		l.clients[client] = b
	}

	b.tokens += now.Sub(b.last).Seconds() * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.last = now

	if b.tokens < 1 {
		if l.rate <= 0 {
			return false, 0, 1
		}
		return false, 0, int((1-b.tokens)/l.rate) + 1
	}
	b.tokens--
	return true, int(b.tokens), 0
}
