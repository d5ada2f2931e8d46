package httpx

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/researchdesk/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows temporary bursts above the steady rate. Only the
	// in-memory limiter honours it.
	Burst int
}

// Rate limit profiles, overridable through RATELIMIT_{STRICT,MODERATE,LENIENT,PUBLIC}_{REQUESTS,WINDOW_SEC,BURST}.
var (
	// StrictLimit guards register and login against credential stuffing.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	// ModerateLimit covers the LLM backed analysis endpoints and uploads.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit covers authenticated CRUD.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 120, Window: time.Minute, Burst: 120}

	// PublicLimit covers health probes and docs.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
}

// ParseRateLimitFromEnv reads RATELIMIT_{prefix}_REQUESTS, _WINDOW_SEC and
// _BURST over the defaults. Invalid or non-positive values are ignored.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	cfg := def

	if n, ok := positiveEnvInt("RATELIMIT_" + prefix + "_REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positiveEnvInt("RATELIMIT_" + prefix + "_WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnvInt("RATELIMIT_" + prefix + "_BURST"); ok {
		cfg.Burst = n
	}

	return cfg
}

func positiveEnvInt(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	return n, err == nil && n > 0
}

// KeyExtractor groups requests for rate limiting (IP, user id, ...).
type KeyExtractor func(*http.Request) string

// IPKeyExtractor extracts the client IP, honouring X-Forwarded-For and
// X-Real-IP set by a fronting proxy.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// UserIDKeyExtractor returns the authenticated user id, or "".
func UserIDKeyExtractor(r *http.Request) string {
	return UserIDFromContext(r.Context())
}

// CompositeKeyExtractor joins the non-empty keys of several extractors.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		var parts []string
		for _, extractor := range extractors {
			if key := extractor(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// Decision is a limiter verdict for one request.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter decides whether the request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// LimiterFactory builds the limiter for a named route group. The router uses
// it to switch between process-local and shared limiters.
type LimiterFactory func(name string, cfg RateLimitConfig) Limiter

// MemoryLimiterFactory ignores the name: every call gets its own buckets.
func MemoryLimiterFactory(_ string, cfg RateLimitConfig) Limiter {
	return NewMemoryLimiter(cfg)
}

// MemoryLimiter is a per-key token bucket held in process memory.
type MemoryLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

// NewMemoryLimiter refills RequestsPerWindow tokens per Window with room for
// Burst at once.
func NewMemoryLimiter(cfg RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		rate:        rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:       max(cfg.Burst, 1),
		lastCleanup: time.Now(),
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	limiter := m.get(key)
	if limiter.Allow() {
		return Decision{Allowed: true}, nil
	}

	// Peek at when the next token lands without consuming it
	r := limiter.Reserve()
	delay := r.Delay()
	r.Cancel()

	return Decision{Allowed: false, RetryAfter: delay}, nil
}

func (m *MemoryLimiter) get(key string) *rate.Limiter {
	if l, ok := m.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}

	actual, _ := m.limiters.LoadOrStore(key, rate.NewLimiter(m.rate, m.burst))
	m.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup drops idle buckets (full of tokens) at most every 5 minutes so
// one-off client IPs do not accumulate forever.
func (m *MemoryLimiter) maybeCleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.lastCleanup) < 5*time.Minute {
		return
	}
	m.lastCleanup = time.Now()

	m.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(m.burst) {
			m.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware limits with a fresh in-memory limiter.
func RateLimitMiddleware(cfg RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	return RateLimitWith(NewMemoryLimiter(cfg), cfg, keyExtractor)
}

// RateLimitWith enforces limiter on requests grouped by keyExtractor. A
// limiter backend error lets the request through.
func RateLimitWith(limiter Limiter, cfg RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			key := keyExtractor(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			decision, err := limiter.Allow(ctx, key)
			if err != nil {
				log.Warn("rate limit backend failed, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				retryAfter := max(int(decision.RetryAfter.Round(time.Second).Seconds()), 1)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", cfg.Window.String())

				log.Warn("rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
					fmt.Sprintf("Too many requests. Please try again in %d seconds.", retryAfter))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client IP with an in-memory limiter.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByUser limits by user id plus IP. It must run after
// AuthnMiddleware; anonymous requests fall back to IP alone.
func RateLimitByUser(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, UserKeyExtractor)
}

// UserKeyExtractor is the key RateLimitByUser uses.
var UserKeyExtractor = CompositeKeyExtractor(":", UserIDKeyExtractor, IPKeyExtractor)
