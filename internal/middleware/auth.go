// Package middleware provides HTTP middleware shared by the API routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cryptolens/cryptolens/internal/auth"
	"github.com/cryptolens/cryptolens/internal/response"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth creates an authentication middleware that verifies the Bearer token
// and stores the user id on the request context.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.WriteUnauthorized(w, "Missing bearer token")
				return
			}

			userID, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				response.WriteUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id stored by Auth.
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
