package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/crucial707/watchlist/internal/models"
	"github.com/crucial707/watchlist/internal/repo"
	"github.com/crucial707/watchlist/internal/session"
	"github.com/rs/zerolog/log"
)

// LoginMessage is flashed when an anonymous request hits a protected route.
const LoginMessage = "Please log in to access this page."

type key string

const userKey key = "current_user"

// UserLoader loads the row behind a session's user id.
type UserLoader interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// WithUser stores the authenticated user on ctx.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// GetUser returns the authenticated user stored by CurrentUser.
func GetUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}

// CurrentUser resolves the session's user id to a user row. A session naming a
// deleted user is treated as anonymous. Must run after session.Manager.Middleware.
func CurrentUser(users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.From(r.Context())
			if !s.Authenticated() {
				next.ServeHTTP(w, r)
				return
			}
			u, err := users.GetByID(r.Context(), s.UserID)
			if err != nil {
				if !errors.Is(err, repo.ErrNotFound) {
					log.Error().Err(err).Int("user_id", s.UserID).Msg("load session user")
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireLogin redirects anonymous requests to /login?next=<path> with a flash.
func RequireLogin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUser(r.Context()); !ok {
				if err := sessions.Flash(w, r, LoginMessage); err != nil {
					log.Error().Err(err).Msg("flash login message")
				}
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
