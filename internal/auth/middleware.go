package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/evcraddock/hvr-studio/internal/logging"
)

const (
	rateLimitWindow  = 1 * time.Minute
	rateLimitMaxFail = 10
)

// rateLimiter tracks failed API key attempts per IP.
type rateLimiter struct {
	mu       sync.Mutex
	now      func() time.Time
	attempts map[string][]time.Time
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{now: time.Now, attempts: make(map[string][]time.Time)}
}

// recent prunes attempts older than the window and returns what is left.
// Callers hold mu.
func (rl *rateLimiter) recent(ip string) []time.Time {
	cutoff := rl.now().Add(-rateLimitWindow)
	valid := rl.attempts[ip][:0]
	for _, t := range rl.attempts[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		delete(rl.attempts, ip)
		return nil
	}
	rl.attempts[ip] = valid
	return valid
}

// limited reports whether ip has used up its failed attempts.
func (rl *rateLimiter) limited(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.recent(ip)) >= rateLimitMaxFail
}

// recordFailure records a failed attempt.
func (rl *rateLimiter) recordFailure(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.attempts[ip] = append(rl.recent(ip), rl.now())
}

// RequireAPIKey is middleware that validates Bearer token auth for /api/ routes.
// Non-API routes and the public form endpoints under /api/public/ pass through.
// Returns 401 for missing/invalid keys, 429 once an IP has failed too often.
func RequireAPIKey(apiKeys *APIKeyStore, logger *slog.Logger, next http.Handler) http.Handler {
	limiter := newRateLimiter()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/api/public/") {
			next.ServeHTTP(w, r)
			return
		}

		ip := logging.ClientIP(r)
		if limiter.limited(ip) {
			writeError(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		key, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || key == "" {
			writeError(w, "authorization required", http.StatusUnauthorized)
			return
		}

		valid, err := apiKeys.Validate(r.Context(), key)
		if err != nil {
			logger.ErrorContext(r.Context(), "validating api key", "error", err)
			writeError(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !valid {
			limiter.recordFailure(ip)
			writeError(w, "invalid API key", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
