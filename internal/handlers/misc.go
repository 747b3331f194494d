package handlers

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// UserPage greets the name in the path. The name is HTML-escaped.
func UserPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>hello %s</h1>", html.EscapeString(name))
}

// TestPage logs a sample of generated URLs. Registered only in debug mode.
func TestPage(w http.ResponseWriter, r *http.Request) {
	for _, u := range []string{
		indexURL(),
		userURL("chen"),
		userURL("wei"),
		testURL(nil),
		testURL(url.Values{"num": {"1"}}),
	} {
		log.Info().Str("url", u).Msg("url for")
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "test page")
}

// ==========================
// Health / Readiness
// ==========================
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "ok")
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Ready reports 503 while the database is unreachable.
func Ready(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := db.PingContext(r.Context()); err != nil {
			log.Warn().Err(err).Msg("readiness check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "database unavailable")
			return
		}
		fmt.Fprint(w, "ready")
	}
}
