package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/splitbuddy/splitbuddy/pkg/middleware"
	"github.com/splitbuddy/splitbuddy/pkg/response"
)

// Limiter enforces a sliding-window request limit per bucket key. Each
// protected route group gets its own Limiter instance; there is no shared
// global state.
type Limiter struct {
	mu           sync.Mutex
	requests     map[string][]time.Time
	stopCleanup  chan struct{}
	shutdownOnce sync.Once

	maxRequests     int
	window          time.Duration
	cleanupInterval time.Duration
}

// Config holds rate limiter configuration
type Config struct {
	MaxRequests     int
	Window          time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		MaxRequests:     60,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// New creates a rate limiter and starts its background cleanup
func New(config Config) *Limiter {
	if config.MaxRequests <= 0 || config.Window <= 0 {
		defaults := DefaultConfig()
		config.MaxRequests = defaults.MaxRequests
		config.Window = defaults.Window
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	l := &Limiter{
		requests:        make(map[string][]time.Time),
		stopCleanup:     make(chan struct{}),
		maxRequests:     config.MaxRequests,
		window:          config.Window,
		cleanupInterval: config.CleanupInterval,
	}
	go l.startCleanup()
	return l
}

// Allow reports whether a request for the given key fits in the current
// window, recording it if so
func (l *Limiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	times := l.trimLocked(key, now)
	if len(times) >= l.maxRequests {
		return false
	}

	l.requests[key] = append(times, now)
	return true
}

// RetryAfter returns how many seconds until the oldest request in the
// window expires for the given key
func (l *Limiter) RetryAfter(key string) int {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	times := l.trimLocked(key, now)
	if len(times) == 0 {
		return 0
	}

	retry := int(times[0].Add(l.window).Sub(now).Seconds())
	if retry < 1 {
		retry = 1
	}
	return retry
}

// trimLocked drops requests that fell out of the window. Caller holds mu.
func (l *Limiter) trimLocked(key string, now time.Time) []time.Time {
	times := l.requests[key]
	cutoff := now.Add(-l.window)
	for len(times) > 0 && !times[0].After(cutoff) {
		times = times[1:]
	}
	if len(times) == 0 {
		delete(l.requests, key)
	} else {
		l.requests[key] = times
	}
	return times
}

func (l *Limiter) startCleanup() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanupStaleEntries()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *Limiter) cleanupStaleEntries() {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key := range l.requests {
		l.trimLocked(key, now)
	}
}

// ActiveKeys returns the number of currently tracked buckets
func (l *Limiter) ActiveKeys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

// Stop shuts down the cleanup goroutine
func (l *Limiter) Stop() {
	l.shutdownOnce.Do(func() {
		close(l.stopCleanup)
	})
}

// KeyFunc derives the rate-limit bucket key for a request
type KeyFunc func(*http.Request) string

// PerIP buckets requests by client IP, honoring X-Forwarded-For
func PerIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return "ip_" + strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip_" + r.RemoteAddr
	}
	return "ip_" + host
}

// PerUser buckets requests by authenticated user, falling back to client IP
// for unauthenticated requests
func PerUser(r *http.Request) string {
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		return "user_" + userID
	}
	return PerIP(r)
}

// Middleware rejects over-limit requests with a 429 and Retry-After header
func (l *Limiter) Middleware(key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if !l.Allow(k) {
				response.TooManyRequests(w, "Rate limit exceeded. Please try again later.", l.RetryAfter(k))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
