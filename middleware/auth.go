package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/projectwalnut/backend/apperr"
	"github.com/projectwalnut/backend/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const UserIDKey contextKey = "userID"

// SessionCookie is where the session token lives for browser clients. API
// clients may send a Bearer header instead; the cookie wins when both are set.
const SessionCookie = "token"

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if parts := strings.SplitN(h, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Auth requires a valid session token and stores the caller's user id in the
// request context.
func Auth(jwtSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
				return
			}
			uid, err := auth.DecodeToken(raw, []byte(jwtSecret))
			if err != nil {
				if errors.Is(err, apperr.ErrTokenExpired) {
					http.Error(w, `{"error":"session expired, log in again"}`, http.StatusUnauthorized)
					return
				}
				http.Error(w, `{"error":"invalid session token"}`, http.StatusUnauthorized)
				return
			}
			userID, err := primitive.ObjectIDFromHex(uid)
			if err != nil {
				http.Error(w, `{"error":"invalid session token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth decodes the session token when one is present but lets the
// request through unauthenticated otherwise. Used on public pages that show
// extra content to logged-in users.
func OptionalAuth(jwtSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := auth.DecodeToken(raw, []byte(jwtSecret))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := primitive.ObjectIDFromHex(uid)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated caller's id, if any.
func UserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(UserIDKey).(primitive.ObjectID)
	return id, ok
}
