package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"credit-advisor/internal/config"

	"github.com/redis/go-redis/v9"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg := config.RateLimitConfig{
		Enabled: true,
		RPS:     1,
		Burst:   1,
	}

	t.Run("blocks requests exceeding the in-process limit", func(t *testing.T) {
		rl := NewRateLimiterMiddleware(cfg, nil, logger)
		handler := rl.Middleware(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:12345"

		rec1 := httptest.NewRecorder()
		handler.ServeHTTP(rec1, req)
		if rec1.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec1.Code)
		}

		rec2 := httptest.NewRecorder()
		handler.ServeHTTP(rec2, req)
		if rec2.Code != http.StatusTooManyRequests {
			t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, rec2.Code)
		}

		var response map[string]any
		if err := json.NewDecoder(rec2.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response["error"].(map[string]any)["message"] != "Rate limit exceeded" {
			t.Errorf("unexpected error message: %v", response)
		}
	})

	t.Run("limits each client separately", func(t *testing.T) {
		rl := NewRateLimiterMiddleware(cfg, nil, logger)
		handler := rl.Middleware(okHandler())

		for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Errorf("expected status %d for %s, got %d", http.StatusOK, addr, rec.Code)
			}
		}
	})

	t.Run("passes through when disabled", func(t *testing.T) {
		rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: false}, nil, logger)
		handler := rl.Middleware(okHandler())

		for range 5 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
			}
		}
	})

	t.Run("fails open when the counter store errors", func(t *testing.T) {
		rl := NewRateLimiterMiddleware(cfg, nil, logger)
		rl.allow = func(context.Context, string) (bool, error) { return false, errors.New("connection refused") }

		rec := httptest.NewRecorder()
		rl.Middleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("fails open when Redis is unreachable", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 50 * time.Millisecond,
			MaxRetries:  -1,
		})
		defer client.Close()

		rl := NewRateLimiterMiddleware(cfg, client, logger)

		rec := httptest.NewRecorder()
		rl.Middleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("prunes idle buckets", func(t *testing.T) {
		rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 1000, Burst: 1}, nil, logger)
		rl.getLimiter("10.0.0.9")

		rl.pruneIdle()

		if _, ok := rl.limiters.Load("10.0.0.9"); ok {
			t.Errorf("expected idle limiter to be removed")
		}
	})

	t.Run("extractIP handles various headers", func(t *testing.T) {
		rl := NewRateLimiterMiddleware(cfg, nil, logger)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.1, 10.0.0.1")
		if ip := rl.extractIP(req); ip != "192.168.1.1" {
			t.Errorf("expected IP %s, got %s", "192.168.1.1", ip)
		}

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "192.168.1.2")
		if ip := rl.extractIP(req); ip != "192.168.1.2" {
			t.Errorf("expected IP %s, got %s", "192.168.1.2", ip)
		}

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.3:12345"
		if ip := rl.extractIP(req); ip != "192.168.1.3" {
			t.Errorf("expected IP %s, got %s", "192.168.1.3", ip)
		}

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "not-an-address"
		if ip := rl.extractIP(req); ip != unknownIP {
			t.Errorf("expected %s, got %s", unknownIP, ip)
		}
	})
}

func TestWindowLimit(t *testing.T) {
	tests := []struct {
		rps  float64
		want int64
	}{
		{rps: 0.2, want: 1},
		{rps: 0.999, want: 1},
		{rps: 0, want: 1},
		{rps: 1, want: 1},
		{rps: 2.5, want: 3},
		{rps: 10, want: 10},
	}

	for _, tt := range tests {
		if got := windowLimit(tt.rps); got != tt.want {
			t.Errorf("windowLimit(%v) = %d, want %d", tt.rps, got, tt.want)
		}
	}

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 0.5}, client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if rl.windowLimit != 1 {
		t.Errorf("expected a fractional rate to admit one request per window, got limit %d", rl.windowLimit)
	}
}
