package api

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("third request should be limited")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("other IPs have their own bucket")
	}
	if got := rl.RetryAfter("1.2.3.4"); got != 61 {
		t.Fatalf("RetryAfter = %d, want 61", got)
	}

	now = now.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Fatal("window reset should allow again")
	}
}

func TestRateLimiterSweepsStaleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("1.2.3.4")
	rl.Allow("5.6.7.8")

	now = now.Add(3 * time.Minute)
	rl.Allow("9.9.9.9")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.buckets) != 1 {
		t.Fatalf("buckets = %d after sweep, want only the fresh one", len(rl.buckets))
	}
	if _, ok := rl.buckets["9.9.9.9"]; !ok {
		t.Fatal("fresh bucket missing")
	}
}

func TestParseTrustedProxies(t *testing.T) {
	tp, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.168.1.7", "::1"})
	if err != nil {
		t.Fatalf("ParseTrustedProxies: %v", err)
	}
	for ip, want := range map[string]bool{
		"10.20.30.40":  true,
		"192.168.1.7":  true,
		"192.168.1.8":  false,
		"::1":          true,
		"not-an-ip":    false,
		"203.0.113.10": false,
	} {
		if got := tp.trusts(ip); got != want {
			t.Errorf("trusts(%q) = %v, want %v", ip, got, want)
		}
	}

	if _, err := ParseTrustedProxies([]string{"proxy.internal"}); err == nil {
		t.Fatal("expected error for hostname")
	}
}

func TestClientIP(t *testing.T) {
	tp, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		remote string
		xff    string
		trust  TrustedProxies
		want   string
	}{
		{"direct peer", "10.0.0.1:5555", "", nil, "10.0.0.1"},
		{"header from untrusted peer ignored", "198.51.100.4:5555", "203.0.113.9", tp, "198.51.100.4"},
		{"header ignored with no trusted proxies", "10.0.0.1:5555", "203.0.113.9", nil, "10.0.0.1"},
		{"trusted proxy", "10.0.0.1:5555", "203.0.113.9", tp, "203.0.113.9"},
		{"spoofed left hops skipped", "10.0.0.1:5555", "1.1.1.1, 203.0.113.9", tp, "203.0.113.9"},
		{"chain of trusted proxies", "10.0.0.1:5555", "203.0.113.9, 10.0.0.2", tp, "203.0.113.9"},
		{"trusted proxy without header", "10.0.0.1:5555", "", tp, "10.0.0.1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = c.remote
			if c.xff != "" {
				r.Header.Set("X-Forwarded-For", c.xff)
			}
			if got := c.trust.ClientIP(r); got != c.want {
				t.Errorf("ClientIP = %q, want %q", got, c.want)
			}
		})
	}
}
