package middleware

import (
	"context"
	"net/http"

	"shopdesk/internal/auth"
	"shopdesk/internal/models"
	"shopdesk/internal/session"
	"shopdesk/internal/transport"
)

type userKey struct{}

// RequireSession lets a request through only when its console cookie names
// the user currently signed in to this process.
func RequireSession(tokens *auth.Manager, store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := store.Current()
			if !ok {
				transport.WriteError(w, http.StatusUnauthorized, "not signed in", nil)
				return
			}
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				transport.WriteError(w, http.StatusUnauthorized, "not signed in", nil)
				return
			}
			claims, err := tokens.Parse(cookie.Value)
			if err != nil || claims.Subject != user.ID {
				transport.WriteError(w, http.StatusUnauthorized, "session expired", nil)
				return
			}
			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}
