package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"quiz-backend/internal/models"
	"quiz-backend/internal/services"
	"quiz-backend/utils/response"

	"github.com/google/uuid"
)

type contextKey string

const IdentityContextKey contextKey = "identity"

const bearerPrefix = "Bearer "

type TokenVerifier interface {
	Verify(token string) (*models.Identity, error)
}

type AdminAuthorizer interface {
	AuthorizeAdmin(ctx context.Context, userID uuid.UUID) error
}

type AuthMiddleware struct {
	tokens TokenVerifier
	admins AdminAuthorizer
}

func NewAuthMiddleware(tokens TokenVerifier, admins AdminAuthorizer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, admins: admins}
}

// RequireAuth verifies the bearer token and puts the acting identity into the
// request context. Handlers must take the user id from there only.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Error(w, http.StatusUnauthorized, "Token is missing")
			return
		}
		// The scheme is matched case-sensitively.
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Error(w, http.StatusUnauthorized, "Token is invalid")
			return
		}

		identity, err := m.tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			if errors.Is(err, services.ErrMissingToken) {
				response.Error(w, http.StatusUnauthorized, "Token is missing")
				return
			}
			slog.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "error", err)
			response.Error(w, http.StatusUnauthorized, "Token is invalid")
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin authenticates the request and then checks the stored role.
// It fails closed: a store error denies the request with 503.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, http.StatusUnauthorized, "Token is missing")
			return
		}

		if err := m.admins.AuthorizeAdmin(r.Context(), identity.UserID); err != nil {
			if errors.Is(err, services.ErrForbidden) {
				response.Error(w, http.StatusForbidden, "Admin access required")
				return
			}
			slog.ErrorContext(r.Context(), "admin check failed", "user_id", identity.UserID, "error", err)
			response.Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func IdentityFromContext(ctx context.Context) *models.Identity {
	identity, ok := ctx.Value(IdentityContextKey).(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}
