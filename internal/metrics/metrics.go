package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RequestTotal counts HTTP requests by method, route, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// MovieChanges counts successful movie writes by action (create, update, delete).
	MovieChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchlist_movie_changes_total",
			Help: "Total number of movie rows written by action",
		},
		[]string{"action"},
	)

	// LoginAttempts counts login form submissions by result (success, failure, invalid).
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchlist_login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)
)

// Unmatched labels requests that matched no route, so unknown paths share one series.
const Unmatched = "unmatched"

var (
	paramPattern = regexp.MustCompile(`\{([^{}:]+):[^{}]*\}`)
	initOnce     sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, MovieChanges, LoginAttempts)
	})
}

// RouteLabel turns a chi route pattern into a metric label: parameter regexps
// are dropped and an empty pattern becomes Unmatched.
// E.g. /movie/edit/{id:[0-9]+} -> /movie/edit/{id}.
func RouteLabel(pattern string) string {
	if pattern == "" {
		return Unmatched
	}
	return paramPattern.ReplaceAllString(pattern, "{$1}")
}

// MethodLabel keeps the standard HTTP methods and folds anything else into "other".
func MethodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	}
	return "other"
}

// RecordRequest records duration and count for an HTTP request. route is the
// matched route pattern, empty when nothing matched.
func RecordRequest(method, route string, statusCode int, durationSeconds float64) {
	method = MethodLabel(method)
	route = RouteLabel(route)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, route, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, route, status).Inc()
}

// IncMovieChange increments the movie write counter for action (create, update, delete).
func IncMovieChange(action string) {
	MovieChanges.WithLabelValues(action).Inc()
}

// IncLoginAttempt increments the login counter for result (success, failure, invalid).
func IncLoginAttempt(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}
