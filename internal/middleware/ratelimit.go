package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"quiz-backend/internal/ratelimit"
	"quiz-backend/utils/response"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(r *http.Request) string

// RateLimit rejects requests over the limiter's budget with 429. A nil
// limiter disables it. Limiter errors let the request through.
func RateLimit(limiter ratelimit.Limiter, key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), key(r))
			if err != nil {
				slog.WarnContext(r.Context(), "rate limiter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				response.Error(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ByClientIP keys requests by the caller's address. Proxy headers are read
// only when trustProxy is set.
func ByClientIP(trustProxy bool) KeyFunc {
	return func(r *http.Request) string {
		return "ip:" + ClientIP(r, trustProxy)
	}
}

// ByIdentity keys authenticated requests by the acting user and falls back
// to the client address.
func ByIdentity(trustProxy bool) KeyFunc {
	byIP := ByClientIP(trustProxy)
	return func(r *http.Request) string {
		if identity := IdentityFromContext(r.Context()); identity != nil {
			return "user:" + identity.UserID.String()
		}
		return byIP(r)
	}
}

// ClientIP returns the host part of RemoteAddr. Behind a trusted proxy it
// prefers X-Forwarded-For, then X-Real-IP.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return xri
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
