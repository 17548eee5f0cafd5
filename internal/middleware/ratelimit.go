package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// windowLimiter counts requests per key in fixed windows.
type windowLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	windows map[string]*window
	swept   time.Time
}

type window struct {
	count int
	reset time.Time
}

func newWindowLimiter(limit int, per time.Duration, now func() time.Time) *windowLimiter {
	return &windowLimiter{
		limit:   limit,
		window:  per,
		now:     now,
		windows: make(map[string]*window),
	}
}

// allow records a hit for key. When the key is over its limit it returns the
// time until its window resets.
func (l *windowLimiter) allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)
	w, ok := l.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(l.window)}
		l.windows[key] = w
	}
	if w.count >= l.limit {
		return false, w.reset.Sub(now)
	}
	w.count++
	return true, 0
}

// sweep drops expired windows at most once per window length.
func (l *windowLimiter) sweep(now time.Time) {
	if now.Sub(l.swept) < l.window {
		return
	}
	for key, w := range l.windows {
		if !now.Before(w.reset) {
			delete(l.windows, key)
		}
	}
	l.swept = now
}

// RateLimit allows limit requests per window for each caller. Authenticated
// callers are keyed by user id, anonymous ones by client IP. Place it behind
// chi's RealIP so proxied addresses are honoured.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	return rateLimit(newWindowLimiter(limit, per, time.Now))
}

func rateLimit(l *windowLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := l.allow(rateLimitKey(r))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if userID := UserIDFromContext(r.Context()); userID != "" {
		return "user:" + userID
	}
	return "ip:" + remoteHost(r.RemoteAddr)
}

func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
