package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/RaminJll/ChatApp/errors"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	rolesKey  contextKey = "roles"
)

// BearerFromRequest extracts the opaque credential from a request. The
// Authorization header wins; a "token" query parameter is accepted as well
// because browser websocket clients cannot set headers on the handshake.
func BearerFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// Middleware validates the JWT on incoming HTTP calls and injects the user
// identity into the request context for downstream handlers.
func (i *TokenIssuer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := BearerFromRequest(r)
		if tokenStr == "" {
			http.Error(w, errors.ErrUnauthorized.Error(), http.StatusUnauthorized)
			return
		}
		claims, err := i.ValidateToken(tokenStr)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, rolesKey, claims.Roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated identity stored by Middleware.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}
