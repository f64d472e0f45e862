package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter keeps a sliding window of request times per client IP.
type RateLimiter struct {
	requests  map[string][]time.Time // IP -> request times
	lastSweep time.Time
	mu        sync.Mutex
	now       func() time.Time
}

// NewRateLimiter creates an empty limiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Limit rejects requests beyond maxRequests per window from the same client.
// Health and metrics endpoints are never limited. A non-positive maxRequests disables the limit.
func (l *RateLimiter) Limit(maxRequests int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxRequests <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExemptPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if !l.allow(getClientIP(r), maxRequests, window) {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(window.Seconds()))))
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *RateLimiter) allow(clientIP string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-window)
	if now.Sub(l.lastSweep) >= window {
		l.sweep(windowStart)
		l.lastSweep = now
	}
	kept := prune(l.requests[clientIP], windowStart)
	if len(kept) >= maxRequests {
		l.requests[clientIP] = kept
		return false
	}
	l.requests[clientIP] = append(kept, now)
	return true
}

// sweep drops clients with no requests after windowStart. Callers hold mu.
func (l *RateLimiter) sweep(windowStart time.Time) {
	for ip, times := range l.requests {
		if kept := prune(times, windowStart); len(kept) == 0 {
			delete(l.requests, ip)
		} else {
			l.requests[ip] = kept
		}
	}
}

func prune(times []time.Time, windowStart time.Time) []time.Time {
	kept := times[:0]
	for _, ts := range times {
		if ts.After(windowStart) {
			kept = append(kept, ts)
		}
	}
	return kept
}

func isExemptPath(path string) bool {
	for _, p := range []string{"/health", "/metrics"} {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
