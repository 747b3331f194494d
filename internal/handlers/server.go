package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/crucial707/watchlist/internal/middleware"
	"github.com/crucial707/watchlist/internal/models"
	"github.com/crucial707/watchlist/internal/repo"
	"github.com/crucial707/watchlist/internal/session"
	"github.com/crucial707/watchlist/internal/views"
)

// MovieStore is the subset of repo.MovieRepo the handlers use.
type MovieStore interface {
	List(ctx context.Context) ([]models.Movie, error)
	Create(ctx context.Context, title, year string) (*models.Movie, error)
	GetByID(ctx context.Context, id int) (*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) error
	DeleteByID(ctx context.Context, id int) error
}

// UserStore is the subset of repo.UserRepo the handlers use.
type UserStore interface {
	First(ctx context.Context) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateName(ctx context.Context, id int, name string) error
}

// ==========================
// Server
// ==========================
type Server struct {
	Movies   MovieStore
	Users    UserStore
	Sessions *session.Manager
	Views    *views.Views
}

// render fills the page header data, consumes pending flashes and writes the
// page with status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, page views.Page) {
	owner, err := s.Users.First(r.Context())
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		s.ServerError(w, r, err)
		return
	}
	page.User = owner
	if u, ok := middleware.GetUser(r.Context()); ok {
		page.CurrentUser = u
	}
	page.Flashes = s.Sessions.PopFlashes(w, r)
	s.write(w, status, name, page)
}

func (s *Server) write(w http.ResponseWriter, status int, name string, page views.Page) {
	var buf bytes.Buffer
	if err := s.Views.Render(&buf, name, page); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// NotFound renders the 404 page.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, views.NotFound, views.Page{})
}

// ServerError logs err and renders the generic 500 page. Pending flashes are
// left in the session.
func (s *Server) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	s.ErrorPage(w, r)
}

// ErrorPage renders the 500 page without touching the database.
func (s *Server) ErrorPage(w http.ResponseWriter, r *http.Request) {
	page := views.Page{}
	if u, ok := middleware.GetUser(r.Context()); ok {
		page.CurrentUser = u
	}
	s.write(w, http.StatusInternalServerError, views.Error, page)
}

// flash queues msg and redirects to target.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, msg, target string) {
	if err := s.Sessions.Flash(w, r, msg); err != nil {
		log.Error().Err(err).Msg("save flash")
	}
	http.Redirect(w, r, target, http.StatusFound)
}
