package middlewares

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"

	"github.com/formwave/formwave/httpx"
	"github.com/formwave/formwave/log"
)

// Identity is the resolved caller, carried explicitly through the
// request context so ownership checks stay local and testable.
type Identity struct {
	UserID   int64
	Username string
}

type contextKey struct{}

var identityKey contextKey

// Authenticated verifies the bearer token and resolves the caller's
// identity out of its claims.
func Authenticated(tokenSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(tokenSecret, nil), resolveIdentity).Handler(next)
	}
}

func resolveIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(oauth.ClaimsContext).(map[string]string)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "auth.claims")
			return
		}

		userID, err := strconv.ParseInt(claims["user_id"], 10, 64)
		if err != nil || claims["username"] == "" {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "auth.claims.identity")
			return
		}

		identity := Identity{UserID: userID, Username: claims["username"]}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFrom extracts the caller set by Authenticated.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
