package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/splitbuddy/splitbuddy/pkg/middleware"
)

func newTestLimiter(max int, window time.Duration) *Limiter {
	return New(Config{
		MaxRequests:     max,
		Window:          window,
		CleanupInterval: time.Hour,
	})
}

func TestLimiterAllow(t *testing.T) {
	l := newTestLimiter(3, time.Minute)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("alice") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("alice") {
		t.Error("request over the limit should be denied")
	}

	// Other keys have independent budgets.
	if !l.Allow("bob") {
		t.Error("different key should not share the budget")
	}
}

func TestLimiterWindowSlides(t *testing.T) {
	l := newTestLimiter(2, 50*time.Millisecond)
	defer l.Stop()

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("initial requests should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("third request inside the window should be denied")
	}

	time.Sleep(60 * time.Millisecond)

	if !l.Allow("k") {
		t.Error("request after the window expired should be allowed")
	}
}

func TestLimiterRetryAfter(t *testing.T) {
	l := newTestLimiter(1, time.Minute)
	defer l.Stop()

	if retry := l.RetryAfter("k"); retry != 0 {
		t.Errorf("RetryAfter with no requests = %d, want 0", retry)
	}

	l.Allow("k")
	retry := l.RetryAfter("k")
	if retry < 1 || retry > 60 {
		t.Errorf("RetryAfter = %d, want within (0, 60]", retry)
	}
}

func TestLimiterCleanup(t *testing.T) {
	l := newTestLimiter(5, 10*time.Millisecond)
	defer l.Stop()

	l.Allow("stale")
	time.Sleep(20 * time.Millisecond)
	l.cleanupStaleEntries()

	if n := l.ActiveKeys(); n != 0 {
		t.Errorf("ActiveKeys after cleanup = %d, want 0", n)
	}
}

func TestPerIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:52811"
	if key := PerIP(r); key != "ip_10.0.0.7" {
		t.Errorf("PerIP = %q, want ip_10.0.0.7", key)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if key := PerIP(r); key != "ip_203.0.113.9" {
		t.Errorf("PerIP with X-Forwarded-For = %q, want ip_203.0.113.9", key)
	}
}

func TestPerUserFallsBackToIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:52811"
	if key := PerUser(r); key != "ip_10.0.0.7" {
		t.Errorf("PerUser without identity = %q, want ip_10.0.0.7", key)
	}

	identity := &middleware.Identity{UserID: "u-1"}
	ctx := context.WithValue(r.Context(), middleware.IdentityKey, identity)
	if key := PerUser(r.WithContext(ctx)); key != "user_u-1" {
		t.Errorf("PerUser with identity = %q, want user_u-1", key)
	}
}

func TestMiddlewareRejectsWith429(t *testing.T) {
	l := newTestLimiter(1, time.Minute)
	defer l.Stop()

	handler := l.Middleware(PerIP)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:52811"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, r)
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, r)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}
}
