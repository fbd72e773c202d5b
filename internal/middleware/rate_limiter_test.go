package middleware

import (
	"testing"
	"time"
)

func TestIPRateLimiterAllowsWithinBurst(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Minute, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("request beyond burst should be denied")
	}
}

func TestIPRateLimiterIsolatesKeys(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Minute, 1, time.Minute)

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("first key should be allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("first key should now be exhausted")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("second key should have its own allowance")
	}
}

func TestIPRateLimiterExpiresIdleVisitors(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Minute, 1, time.Minute).(*ipRateLimiter)

	current := time.Now()
	limiter.WithNowFunc(func() time.Time { return current })

	limiter.Allow("10.0.0.1")
	if len(limiter.visitors) != 1 {
		t.Fatalf("expected one tracked visitor got %d", len(limiter.visitors))
	}

	current = current.Add(2 * time.Minute)
	limiter.Allow("10.0.0.2")

	if _, ok := limiter.visitors["10.0.0.1"]; ok {
		t.Fatal("idle visitor should have been evicted")
	}
}

func TestIPRateLimiterEmptyKeyFallsBack(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Minute, 1, time.Minute)

	if !limiter.Allow("") {
		t.Fatal("empty key should be tracked under a fallback bucket")
	}
	if limiter.Allow("") {
		t.Fatal("fallback bucket should be shared across empty keys")
	}
}
