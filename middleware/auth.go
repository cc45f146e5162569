package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/glucheck/backend/util"
)

type contextKey string

// UserContextKey holds the authenticated user's id in the request context.
const UserContextKey contextKey = "user_id"

// Authenticate verifies the Bearer JWT on incoming requests and stores the
// authenticated user id in the request context. Handlers downstream trust
// this identity without re-validating credentials.
func Authenticate(jwtSecretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized: missing Authorization header", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Unauthorized: invalid Authorization format", http.StatusUnauthorized)
				return
			}

			claims, err := util.ValidateJWT(tokenString, jwtSecretKey)
			if err != nil {
				http.Error(w, "Unauthorized: invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user id from the request context.
func UserID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(UserContextKey).(uint)
	return id, ok
}
