package server

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(60, time.Minute, 2, nil)
	defer rl.Close()

	// Burst capacity of 2 allows two immediate requests.
	if !rl.Allow("ip:10.0.0.1") {
		t.Error("first request should be allowed")
	}
	if !rl.Allow("ip:10.0.0.1") {
		t.Error("second request should be allowed")
	}
	if rl.Allow("ip:10.0.0.1") {
		t.Error("third request should exceed the burst capacity")
	}

	// A different key gets its own bucket.
	if !rl.Allow("ip:10.0.0.2") {
		t.Error("request from a different key should be allowed")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(60, time.Minute, 1, nil)
	defer rl.Close()

	rl.Allow("ip:10.0.0.1")
	rl.Allow("ip:10.0.0.2")

	rl.mu.Lock()
	rl.visitors["ip:10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.evictStale(10 * time.Minute)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, exists := rl.visitors["ip:10.0.0.1"]; exists {
		t.Error("stale limiter should have been evicted")
	}
	if _, exists := rl.visitors["ip:10.0.0.2"]; !exists {
		t.Error("active limiter should have been kept")
	}
}

func TestRateLimiterGetStats(t *testing.T) {
	rl := NewRateLimiter(120, time.Minute, 5, nil)
	defer rl.Close()

	rl.Allow("ip:10.0.0.1")

	stats := rl.GetStats()
	if stats["active_limiters"] != 1 {
		t.Errorf("active_limiters = %v, want 1", stats["active_limiters"])
	}
	if stats["rate_per_minute"] != 120.0 {
		t.Errorf("rate_per_minute = %v, want 120", stats["rate_per_minute"])
	}
	if stats["burst_capacity"] != 5 {
		t.Errorf("burst_capacity = %v, want 5", stats["burst_capacity"])
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		bearer   string
		byAPIKey bool
		byIP     bool
		want     string
	}{
		{
			name:     "api key header preferred",
			apiKey:   "secret-key",
			byAPIKey: true,
			byIP:     true,
			want:     "api:secret-key",
		},
		{
			name:     "bearer token fallback",
			bearer:   "token-123",
			byAPIKey: true,
			byIP:     true,
			want:     "api:token-123",
		},
		{
			name: "ip fallback when no api key",
			byAPIKey: true,
			byIP:     true,
			want:     "ip:192.168.1.1",
		},
		{
			name:     "neither strategy enabled",
			apiKey:   "secret-key",
			byAPIKey: false,
			byIP:     false,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/extract", nil)
			r.RemoteAddr = "192.168.1.1:54321"
			if tt.apiKey != "" {
				r.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.bearer != "" {
				r.Header.Set("Authorization", "Bearer "+tt.bearer)
			}

			got := getRateLimitKey(r, tt.byAPIKey, tt.byIP)
			if got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "10.0.0.5:12345",
			want:       "10.0.0.5",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.5:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for list takes first valid",
			remoteAddr: "10.0.0.5:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for invalid falls through to real ip",
			remoteAddr: "10.0.0.5:12345",
			headers: map[string]string{
				"X-Forwarded-For": "not-an-ip",
				"X-Real-IP":       "198.51.100.3",
			},
			want: "198.51.100.3",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "10.0.0.5",
			want:       "10.0.0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/health", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFirstIP(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"203.0.113.7", "203.0.113.7"},
		{"203.0.113.7, 10.0.0.1", "203.0.113.7"},
		{"garbage, 203.0.113.7", "203.0.113.7"},
		{"garbage", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := parseFirstIP(tt.input); got != tt.want {
			t.Errorf("parseFirstIP(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
