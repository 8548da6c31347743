// Package middleware provides the HTTP middleware chain: session
// authentication, request logging, CORS and per-user throttling.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vinash85/polypLabeler/internal/models"
	"github.com/vinash85/polypLabeler/internal/service"
)

type userContextKey struct{}

// Auth creates an HTTP middleware that validates the session token and adds
// the authenticated user to the request context.
func Auth(authService service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractTokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			user, err := authService.ValidateSession(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					writeError(w, http.StatusUnauthorized, "unauthenticated")
				} else {
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromRequest retrieves the authenticated user from the request
// context. It is only valid behind the Auth middleware.
func GetUserFromRequest(r *http.Request) (*models.User, error) {
	user, ok := r.Context().Value(userContextKey{}).(*models.User)
	if !ok || user == nil {
		return nil, service.ErrUnauthenticated
	}
	return user, nil
}

// extractTokenFromRequest extracts the session token from the Authorization
// header, falling back to the token cookie for browser clients.
func extractTokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie("token")
		if err == nil && cookie != nil {
			return cookie.Value
		}
		return ""
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		// If no Bearer prefix, assume the whole header is the token
		return authHeader
	}

	return strings.TrimPrefix(authHeader, bearerPrefix)
}

// writeError writes an error response in JSON format
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
