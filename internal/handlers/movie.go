package handlers

import (
	"errors"
	"net/http"

	"github.com/crucial707/watchlist/internal/metrics"
	"github.com/crucial707/watchlist/internal/middleware"
	"github.com/crucial707/watchlist/internal/repo"
	"github.com/crucial707/watchlist/internal/views"
)

// ==========================
// Index (list movies)
// ==========================
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	movies, err := s.Movies.List(r.Context())
	if err != nil {
		s.ServerError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, views.Index, views.Page{Movies: movies})
}

// ==========================
// Create Movie
// ==========================
// Anonymous posts are redirected home without a message.
func (s *Server) CreateMovie(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		http.Redirect(w, r, indexURL(), http.StatusFound)
		return
	}

	form, ok := parseMovieForm(r)
	if !ok {
		s.flash(w, r, "Invalid input", indexURL())
		return
	}

	if _, err := s.Movies.Create(r.Context(), form.Title, form.Year); err != nil {
		s.ServerError(w, r, err)
		return
	}
	metrics.IncMovieChange("create")
	s.flash(w, r, "Item created", indexURL())
}

// ==========================
// Edit Movie (form)
// ==========================
func (s *Server) EditMovieForm(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		s.NotFound(w, r)
		return
	}
	movie, err := s.Movies.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		s.NotFound(w, r)
		return
	}
	if err != nil {
		s.ServerError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, views.Edit, views.Page{Movie: movie})
}

// ==========================
// Update Movie
// ==========================
func (s *Server) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		s.NotFound(w, r)
		return
	}
	movie, err := s.Movies.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		s.NotFound(w, r)
		return
	}
	if err != nil {
		s.ServerError(w, r, err)
		return
	}

	form, ok := parseMovieForm(r)
	if !ok {
		s.flash(w, r, "Invalid input.", editURL(id))
		return
	}

	movie.Title = form.Title
	movie.Year = form.Year
	if err := s.Movies.Update(r.Context(), movie); err != nil {
		s.ServerError(w, r, err)
		return
	}
	metrics.IncMovieChange("update")
	s.flash(w, r, "Item updated", indexURL())
}

// ==========================
// Delete Movie
// ==========================
func (s *Server) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		s.NotFound(w, r)
		return
	}
	err := s.Movies.DeleteByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		s.NotFound(w, r)
		return
	}
	if err != nil {
		s.ServerError(w, r, err)
		return
	}
	metrics.IncMovieChange("delete")
	s.flash(w, r, "Item deleted", indexURL())
}
