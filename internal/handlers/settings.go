package handlers

import (
	"net/http"

	"github.com/crucial707/watchlist/internal/middleware"
	"github.com/crucial707/watchlist/internal/views"
)

// ==========================
// Settings (form)
// ==========================
func (s *Server) SettingsForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, views.Settings, views.Page{})
}

// ==========================
// Update Settings
// ==========================
// Only the display name is editable here; credentials change through the CLI.
func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, loginURL(r.URL.RequestURI()), http.StatusFound)
		return
	}

	form, ok := parseSettingsForm(r)
	if !ok {
		s.flash(w, r, "Invalid input", "/settings")
		return
	}

	if err := s.Users.UpdateName(r.Context(), user.ID, form.Name); err != nil {
		s.ServerError(w, r, err)
		return
	}
	s.flash(w, r, "Settings Updated", indexURL())
}
