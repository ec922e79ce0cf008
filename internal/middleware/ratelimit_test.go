package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	l := NewInMemoryRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("fourth request should be blocked")
	}
}

func TestRateLimiterIsPerKey(t *testing.T) {
	l := NewInMemoryRateLimiter(1, time.Minute)
	if !l.Allow("a") {
		t.Fatal("first key should be allowed")
	}
	if !l.Allow("b") {
		t.Error("second key should have its own allowance")
	}
	if l.Allow("a") {
		t.Error("first key should be exhausted")
	}
}

func TestRateLimiterWindowExpires(t *testing.T) {
	l := NewInMemoryRateLimiter(1, 10*time.Millisecond)
	if !l.Allow("x") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("x") {
		t.Fatal("second request inside window should be blocked")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("x") {
		t.Error("request after window should be allowed again")
	}
}
