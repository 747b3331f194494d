package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/crucial707/watchlist/internal/config"
	"github.com/crucial707/watchlist/internal/handlers"
	"github.com/crucial707/watchlist/internal/middleware"
	"github.com/crucial707/watchlist/internal/repo"
	"github.com/crucial707/watchlist/internal/session"
	"github.com/crucial707/watchlist/internal/views"
)

const requestTimeout = 30 * time.Second

// newRouter builds the full HTTP handler for the watchlist site.
func newRouter(gdb *gorm.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(gdb)
	srv := &handlers.Server{
		Movies: repo.NewMovieRepo(gdb),
		Users:  userRepo,
		Sessions: session.NewManager([]byte(cfg.SecretKey), session.Options{
			CookieName: cfg.SessionCookieName,
			TTL:        cfg.SessionTTL(),
			Secure:     cfg.TLSEnabled(),
		}),
		Views: views.MustNew(),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer(http.HandlerFunc(srv.ErrorPage)))
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(chimw.Timeout(requestTimeout))
	if cfg.MetricsEnabled {
		r.Use(middleware.Prometheus)
	}

	// Probes and assets skip session decoding.
	r.Get("/health", handlers.Health)
	if sqlDB, err := gdb.DB(); err == nil {
		r.Get("/ready", handlers.Ready(sqlDB))
	} else {
		log.Warn().Err(err).Msg("readiness check disabled")
	}
	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Handle("/static/*", http.StripPrefix("/static/", views.Static()))

	r.Group(func(r chi.Router) {
		r.Use(srv.Sessions.Middleware)
		r.Use(middleware.CurrentUser(userRepo))

		r.NotFound(srv.NotFound)

		r.Get("/", srv.Index)
		r.Post("/", srv.CreateMovie)
		r.Get("/user/{name}", handlers.UserPage)
		if cfg.Debug {
			r.Get("/test", handlers.TestPage)
		}

		r.Get("/login", srv.LoginForm)
		r.With(middleware.LoginRateLimiter(cfg.LoginRatePerMinute).Middleware).Post("/login", srv.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin(srv.Sessions))
			r.Get("/movie/edit/{id:[0-9]+}", srv.EditMovieForm)
			r.Post("/movie/edit/{id:[0-9]+}", srv.UpdateMovie)
			r.Post("/movie/delete/{id:[0-9]+}", srv.DeleteMovie)
			r.Get("/logout", srv.Logout)
			r.Get("/settings", srv.SettingsForm)
			r.Post("/settings", srv.UpdateSettings)
		})
	})

	return r
}
