// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doRequest(h http.Handler, remoteAddr string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/plugins", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestClientRateLimiter(t *testing.T) {
	rl := NewClientRateLimiter(2, 2, quietLogger())
	handler := rl.Middleware()(okHandler())

	for i := 0; i < 2; i++ {
		if w := doRequest(handler, "192.168.1.1:12345", nil); w.Code != http.StatusOK {
			t.Errorf("request %d: expected status %d, got %d", i, http.StatusOK, w.Code)
		}
	}

	w := doRequest(handler, "192.168.1.1:12345", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	var apiErr APIError
	if err := json.NewDecoder(w.Body).Decode(&apiErr); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if apiErr.Error.Code != "rate_limit_exceeded" {
		t.Errorf("error code = %q, want rate_limit_exceeded", apiErr.Error.Code)
	}
}

func TestClientRateLimiter_DifferentIPs(t *testing.T) {
	rl := NewClientRateLimiter(1, 1, quietLogger())
	handler := rl.Middleware()(okHandler())

	doRequest(handler, "192.168.1.1:12345", nil)

	// same host, different port
	if w := doRequest(handler, "192.168.1.1:23456", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("same IP: expected status %d, got %d", http.StatusTooManyRequests, w.Code)
	}
	if w := doRequest(handler, "192.168.1.2:12345", nil); w.Code != http.StatusOK {
		t.Errorf("second IP: expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestClientRateLimiter_IgnoresForwardingHeaders(t *testing.T) {
	rl := NewClientRateLimiter(1, 1, quietLogger())
	handler := rl.Middleware()(okHandler())

	if w := doRequest(handler, "203.0.113.7:1", map[string]string{"X-Forwarded-For": "10.0.0.1"}); w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	// rotating spoofed headers from the same address must not reset the limit
	for i, headers := range []map[string]string{
		{"X-Forwarded-For": "10.0.0.2"},
		{"X-Real-IP": "10.0.0.3"},
		{"X-Forwarded-For": "10.0.0.4, 10.0.0.5", "X-Real-IP": "10.0.0.6"},
	} {
		if w := doRequest(handler, "203.0.113.7:2", headers); w.Code != http.StatusTooManyRequests {
			t.Errorf("request %d: expected status %d, got %d", i, http.StatusTooManyRequests, w.Code)
		}
	}
}

func TestLimiterCache_ResetsWhenFull(t *testing.T) {
	lc := newLimiterCache[string](1, 1, 2)

	first := lc.get("a")
	lc.get("b")
	if lc.get("a") != first {
		t.Error("expected cached limiter for existing key")
	}

	lc.get("c")
	if n := lc.len(); n != 1 {
		t.Errorf("len() = %d after reset, want 1", n)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"remote addr host", "192.0.2.1:5000", nil, "192.0.2.1"},
		{"remote addr without port", "192.0.2.1", nil, "192.0.2.1"},
		{"ipv6 remote addr", "[2001:db8::1]:443", nil, "2001:db8::1"},
		{"x-real-ip ignored", "127.0.0.1:1", map[string]string{"X-Real-IP": "10.1.1.1"}, "127.0.0.1"},
		{"x-forwarded-for ignored", "127.0.0.1:1", map[string]string{"X-Forwarded-For": "10.2.2.2, 10.3.3.3"}, "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
