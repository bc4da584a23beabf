package auth

import (
	"context"
	"net/http"

	"github.com/wineguy-maker/lcbo-app/pkg/kit"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionFromContext returns the session claims RequireSession stored.
func SessionFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(sessionKey).(Claims)
	return c, ok
}

// RequireSession rejects requests without a valid session token. It
// guards mutation of the favorites list; read routes stay open.
func RequireSession(jwt *TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := bearerClaims(r, jwt)
			if !ok {
				kit.WriteError(w, r, http.StatusUnauthorized, "session required", nil)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
