package httpapi

import (
	"context"
	"net/http"

	"github.com/sohaibalidev/Zeevno/internal/auth"
)

type ctxKey int

const userKey ctxKey = iota

// SessionResolver turns a session cookie into the user it belongs to.
type SessionResolver interface {
	UserFromSession(ctx context.Context, token string) (*auth.User, error)
}

// Sessions attaches the authenticated user, if any, to the request
// context. Resolution is best effort here; the Require* middleware
// decide what an absent user means for each route.
type Sessions struct {
	resolver SessionResolver
}

func NewSessions(resolver SessionResolver) *Sessions {
	return &Sessions{resolver: resolver}
}

func (s *Sessions) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.resolver.UserFromSession(r.Context(), cookie.Value)
		if err != nil {
			// stale or forged cookie; treat the request as anonymous
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// UserFrom returns the session user attached by Sessions.Resolve.
func UserFrom(ctx context.Context) (*auth.User, bool) {
	u, ok := ctx.Value(userKey).(*auth.User)
	return u, ok
}

// RequireAuth guards API routes: anonymous requests get a 401 envelope.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Please sign in to continue.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuthPage guards HTML pages: anonymous visitors are sent to the
// login page instead of getting a JSON error.
func RequireAuthPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireGuestPage keeps signed-in users off the login/register pages.
func RequireGuestPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin guards admin API routes: 401 for anonymous requests,
// 403 for signed-in users without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Please sign in to continue.")
			return
		}
		if !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden", "You don't have access to this resource.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
