package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sapliy/contractplus/internal/auth"
	"github.com/sapliy/contractplus/pkg/jsonutil"
	"github.com/sapliy/contractplus/pkg/observability"
)

type contextKey string

const userIDKey contextKey = "user_id"

// userIDFrom returns the authenticated user id placed in the context by
// requireAuth. The second value is false on unauthenticated requests, which
// can only happen on routes that skipped the middleware.
func userIDFrom(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(userIDKey).(int64)
	return id, ok
}

// requireAuth verifies the bearer token and injects the user id into the
// request context. The core trusts this id unconditionally for ownership
// scoping.
func requireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestLogger tags every request with an id and logs method, path and
// duration.
func requestLogger(logger *observability.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.New().String()
			next.ServeHTTP(w, r)
			logger.Info("request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
