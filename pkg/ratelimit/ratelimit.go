package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GlebRadaev/packmarket/pkg/utils"
)

const idleTTL = 10 * time.Minute

type KeyFunc func(r *http.Request) string

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key. Buckets idle for longer than
// idleTTL are dropped on the next sweep.
type Limiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	limiters  map[string]*entry
	lastSweep time.Time
	now       func() time.Time
}

// PerMinute allows n requests per minute per key, all of which may arrive at once.
func PerMinute(n int) *Limiter {
	return PerWindow(n, time.Minute)
}

// PerWindow allows n requests per window per key, all of which may arrive at
// once. A non-positive n disables the limit.
func PerWindow(n int, window time.Duration) *Limiter {
	if n <= 0 {
		return New(rate.Inf, 0)
	}
	return New(rate.Every(window/time.Duration(n)), n)
}

func New(limit rate.Limit, burst int) *Limiter {
	return &Limiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*entry),
		now:      time.Now,
	}
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > idleTTL {
		for k, e := range l.limiters {
			if now.Sub(e.lastSeen) > idleTTL {
				delete(l.limiters, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func Middleware(l *Limiter, key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if !l.Allow(k) {
				zap.L().Warn("rate limit exceeded", zap.String("key", k), zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", strconv.Itoa(1))
				utils.RespondWithError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
