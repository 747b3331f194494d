package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/crucial707/watchlist/internal/metrics"
	"github.com/crucial707/watchlist/internal/middleware"
	"github.com/crucial707/watchlist/internal/models"
	"github.com/crucial707/watchlist/internal/repo"
	"github.com/crucial707/watchlist/internal/views"
)

// ==========================
// Login (form)
// ==========================
func (s *Server) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	s.render(w, r, http.StatusOK, views.Login, views.Page{Next: next})
}

// ==========================
// Login
// ==========================
// Every mismatch, including a database with no user yet, gets the same message.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")

	form, ok := parseLoginForm(r)
	if !ok {
		metrics.IncLoginAttempt("invalid")
		s.flash(w, r, "Invalid input", loginURL(next))
		return
	}

	user, err := s.Users.First(r.Context())
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		s.ServerError(w, r, err)
		return
	}
	if !credentialsMatch(user, form.Username, form.Password) {
		metrics.IncLoginAttempt("failure")
		log.Info().Str("username", form.Username).Msg("login failed")
		s.flash(w, r, "Invalid username or password", loginURL(next))
		return
	}

	if err := s.Sessions.Login(w, r, user.ID); err != nil {
		s.ServerError(w, r, err)
		return
	}
	metrics.IncLoginAttempt("success")
	log.Info().Int("user_id", user.ID).Msg("login")
	s.flash(w, r, "Login success", safeNext(next))
}

var (
	dummyOnce sync.Once
	dummyUser = &models.User{}

	checkPassword = (*models.User).ValidatePassword
)

// credentialsMatch always runs one bcrypt comparison so a missing user or a
// wrong username takes as long as a wrong password.
func credentialsMatch(user *models.User, username, password string) bool {
	dummyOnce.Do(func() {
		if err := dummyUser.SetPassword("watchlist-dummy-password"); err != nil {
			log.Error().Err(err).Msg("dummy password hash")
		}
	})
	candidate := user
	if candidate == nil || candidate.PasswordHash == "" {
		candidate = dummyUser
	}
	ok := checkPassword(candidate, password)
	return user != nil && candidate == user && user.Username == username && ok
}

// ==========================
// Logout
// ==========================
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if u, ok := middleware.GetUser(r.Context()); ok {
		log.Info().Int("user_id", u.ID).Msg("logout")
	}
	if err := s.Sessions.Logout(w, r); err != nil {
		s.ServerError(w, r, err)
		return
	}
	s.flash(w, r, "Goodbye", indexURL())
}
