package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"credit-advisor/internal/config"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	rateLimitWindow = time.Second
	unknownIP       = "unknown"
)

// allowFunc reports whether a request from key may proceed.
type allowFunc func(ctx context.Context, key string) (bool, error)

type RateLimiterMiddleware struct {
	cfg    config.RateLimitConfig
	logger *slog.Logger
	allow  allowFunc

	limiters    sync.Map
	redis       *redis.Client
	windowLimit int64
}

// windowLimit is the number of requests one IP may make per fixed window.
// Fractional rates round up so a configured rate below 1 still admits a request.
func windowLimit(rps float64) int64 {
	limit := int64(math.Ceil(rps * rateLimitWindow.Seconds()))
	if limit < 1 {
		return 1
	}
	return limit
}

// NewRateLimiterMiddleware counts per-IP requests in Redis when a client is given,
// so that every replica shares one budget, and in process memory otherwise.
func NewRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		cfg:    cfg,
		logger: logger.With("component", "RateLimiter"),
		redis:  redisClient,
	}

	switch {
	case !cfg.Enabled:
		rl.logger.Info("Rate limiting is disabled via configuration.")
	case redisClient != nil:
		rl.allow = rl.allowRedis
		rl.windowLimit = windowLimit(cfg.RPS)
		rl.logger.Info("Rate limiter using Redis fixed window", "rps", cfg.RPS, "window", rateLimitWindow, "limit", rl.windowLimit)
	default:
		rl.allow = rl.allowLocal
		rl.logger.Info("Rate limiter using in-process token buckets", "rps", cfg.RPS, "burst", cfg.Burst)
	}
	return rl
}

func (rl *RateLimiterMiddleware) getLimiter(ip string) *rate.Limiter {
	limiter, _ := rl.limiters.LoadOrStore(ip, rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst))
	return limiter.(*rate.Limiter)
}

func (rl *RateLimiterMiddleware) allowLocal(_ context.Context, ip string) (bool, error) {
	return rl.getLimiter(ip).Allow(), nil
}

// CleanupLimiters drops idle per-IP buckets until ctx is done.
func (rl *RateLimiterMiddleware) CleanupLimiters(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.pruneIdle()
		}
	}
}

func (rl *RateLimiterMiddleware) pruneIdle() {
	rl.limiters.Range(func(key, value any) bool {
		limiter := value.(*rate.Limiter)
		if limiter.Tokens() >= float64(rl.cfg.Burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

func (rl *RateLimiterMiddleware) allowRedis(ctx context.Context, ip string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s", ip)

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rateLimitWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	count, err := incrCmd.Result()
	if err != nil {
		return false, err
	}
	return count <= rl.windowLimit, nil
}

func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); xRealIP != "" && net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
		return parsed.String()
	}
	return unknownIP
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if rl.allow == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)
		if ip == unknownIP {
			rl.logger.WarnContext(r.Context(), "Blocking request due to unknown client IP", "remoteAddr", r.RemoteAddr)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		allowed, err := rl.allow(r.Context(), ip)
		if err != nil {
			// The limiter store being down must not take the API with it.
			rl.logger.ErrorContext(r.Context(), "Rate limit check failed, allowing request", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rateLimitWindow.Seconds()))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"message": "Rate limit exceeded",
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
