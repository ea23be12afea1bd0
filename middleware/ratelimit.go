package middleware

import (
	"net"
	"sync"
	"time"

	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
)

// bucket holds the token state for one client.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

type rateLimiter struct {
	rate    float64
	burst   float64
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// RateLimit throttles clients to perSecond requests, with bursts up to
// burst, keyed by client host. Requests over the limit are answered 429.
// A non-positive rate disables the check.
func RateLimit(perSecond, burst int) Middleware {
	if perSecond <= 0 {
		return func(ctx *request.Context, next Next) *response.Response {
			return next()
		}
	}
	if burst < 1 {
		burst = 1
	}
	rl := &rateLimiter{
		rate:    float64(perSecond),
		burst:   float64(burst),
		buckets: map[string]*bucket{},
		now:     time.Now,
	}

	return func(ctx *request.Context, next Next) *response.Response {
		if !rl.allow(clientKey(ctx)) {
			return response.
				NewError("too many requests", response.StatusTooManyRequests).
				WithHeader("retry-after", "1")
		}
		return next()
	}
}

// allow takes one token from the key's bucket, after refilling it for the
// time elapsed since the last call.
func (rl *rateLimiter) allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.burst, lastRefill: now}
		rl.buckets[key] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * rl.rate
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// clientKey strips the port so every connection from one host shares a
// bucket.
func clientKey(ctx *request.Context) string {
	host, _, err := net.SplitHostPort(ctx.RemoteAddr)
	if err != nil {
		return ctx.RemoteAddr
	}
	return host
}
