package handler

import (
	"context"
	"net/http"
	"strings"

	"tasktracker/internal/service"
	"tasktracker/pkg/respond"
)

type ctxKey int

const userIDKey ctxKey = iota

// UserIDFrom returns the authenticated user id attached by Authenticator.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// Authenticator проверяет bearer-токен. Нет токена — 401, токен есть,
// но не прошел проверку (подпись, срок) — 403.
func Authenticator(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respond.Error(w, r, http.StatusUnauthorized, "authorization token required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				respond.Error(w, r, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			userID, err := auth.Verify(parts[1])
			if err != nil {
				respond.Error(w, r, http.StatusForbidden, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
