package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/chris/contact-unlock/pkg/admin"
	"github.com/chris/contact-unlock/pkg/api"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/models"
	"go.uber.org/zap"
)

// TokenVerifier turns a bearer token into a user.
type TokenVerifier interface {
	Verify(token string) (*identity.User, error)
}

// SessionValidator looks up admin sessions.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*models.AdminSession, error)
}

// AdminTokenHeader carries the admin session token.
const AdminTokenHeader = "X-Admin-Token"

// Identity attaches the caller to the request context. Requests without an
// Authorization header continue anonymously; a bad token is rejected.
func Identity(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := identity.BearerToken(header)
			if !ok {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}
			user, err := verifier.Verify(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin rejects requests to adminToken-secured operations that carry
// no valid admin session token. It runs as a per-operation handler
// middleware, so other operations pass through untouched.
func RequireAdmin(sessions SessionValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Context().Value(api.AdminTokenScopes) == nil {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessions.Validate(r.Context(), r.Header.Get(AdminTokenHeader))
			if err != nil {
				if errors.Is(err, admin.ErrInvalidSession) {
					http.Error(w, "admin session required", http.StatusUnauthorized)
					return
				}
				logger.Error("failed to validate admin session", zap.Error(err))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(admin.WithSession(r.Context(), session)))
		})
	}
}
