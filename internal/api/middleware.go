package api

import (
	"context"
	"net/http"

	"github.com/Tous-project/chat-server/internal/auth"
	"github.com/Tous-project/chat-server/internal/domain"
)

type ctxKey int

const userKey ctxKey = iota

// sessionToken pulls the token from the X-Session-Id header, falling back
// to the session_id query parameter for browser WebSocket clients that
// cannot set headers.
func sessionToken(r *http.Request) string {
	if t := r.Header.Get("X-Session-Id"); t != "" {
		return t
	}
	return r.URL.Query().Get("session_id")
}

// RequireSession verifies the session token and stores the resolved user
// in the request context.
func RequireSession(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				writeError(w, http.StatusBadRequest, "session id required")
				return
			}
			user, err := verifier.Verify(r.Context(), token)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

func withUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func userFrom(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey).(domain.User)
	return u, ok
}
