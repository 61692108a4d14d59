package adapthttp

import (
	"context"
	"errors"
	"net/http"

	"promptpic/internal/app"
	"promptpic/internal/domain"
)

type contextKey string

const profileContextKey contextKey = "profile"

// authMiddleware validates the session cookie and stashes the profile in the
// request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth if disabled (for tests)
		if s.disableAuth {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie("session")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		profile, err := s.auth.ValidateSession(r.Context(), cookie.Value)
		if errors.Is(err, app.ErrSessionNotFound) || errors.Is(err, app.ErrSessionExpired) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), profileContextKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// profileFromContext returns the authenticated profile, or nil when auth is
// disabled.
func profileFromContext(ctx context.Context) *domain.Profile {
	p, _ := ctx.Value(profileContextKey).(*domain.Profile)
	return p
}
