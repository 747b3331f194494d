// Package session keeps the logged-in user id and pending flash messages in a
// signed, HttpOnly cookie. The cookie value is an HS256 JWT; nothing is stored
// server side.
package session

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	claimUserID  = "user_id"
	claimFlashes = "flashes"
)

// Session is the per-request view of the cookie.
type Session struct {
	UserID  int
	Flashes []string
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID > 0
}

type ctxKey struct{}

// From returns the session loaded by Manager.Middleware, or an empty session.
func From(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok {
		return s
	}
	return &Session{}
}

// WithSession stores s on ctx. Middleware does this for every request.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

type Options struct {
	CookieName string
	TTL        time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// Manager reads and writes session cookies.
type Manager struct {
	auth       *jwtauth.JWTAuth
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewManager(secret []byte, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{
		auth:       jwtauth.New("HS256", secret, nil),
		cookieName: opts.CookieName,
		ttl:        opts.TTL,
		secure:     opts.Secure,
	}
}

// CookieName is the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Middleware verifies the session cookie and stores the decoded Session on the
// request context. Missing, expired or forged cookies yield an empty session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	load := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := &Session{}
		if token, claims, err := jwtauth.FromContext(r.Context()); err == nil && token != nil {
			s = fromClaims(claims)
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
	return jwtauth.Verify(m.auth, m.tokenFromCookie)(load)
}

func (m *Manager) tokenFromCookie(r *http.Request) string {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func fromClaims(claims map[string]interface{}) *Session {
	s := &Session{}
	if raw, ok := claims[claimUserID].(string); ok {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			s.UserID = id
		}
	}
	if raw, ok := claims[claimFlashes].([]interface{}); ok {
		for _, f := range raw {
			if msg, ok := f.(string); ok {
				s.Flashes = append(s.Flashes, msg)
			}
		}
	}
	return s
}

// Encode signs s into a cookie value.
func (m *Manager) Encode(s *Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	if s.UserID > 0 {
		claims[claimUserID] = strconv.Itoa(s.UserID)
	}
	if len(s.Flashes) > 0 {
		claims[claimFlashes] = s.Flashes
	}
	_, token, err := m.auth.Encode(claims)
	return token, err
}

// Save writes s to the response. An empty session clears the cookie.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	if !s.Authenticated() && len(s.Flashes) == 0 {
		m.setCookie(w, &http.Cookie{
			Name:     m.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   m.secure,
		})
		return nil
	}

	token, err := m.Encode(s)
	if err != nil {
		return err
	}
	m.setCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
	})
	return nil
}

// setCookie replaces any session cookie already queued on w so that a handler
// calling Flash after Login emits a single Set-Cookie.
func (m *Manager) setCookie(w http.ResponseWriter, c *http.Cookie) {
	h := w.Header()
	prefix := m.cookieName + "="
	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	http.SetCookie(w, c)
}

// Login marks userID as authenticated for the rest of the session.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID int) error {
	s := From(r.Context())
	s.UserID = userID
	return m.Save(w, s)
}

// Logout forgets the user but keeps pending flashes.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	s := From(r.Context())
	s.UserID = 0
	return m.Save(w, s)
}

// Flash queues msg for the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, msg string) error {
	s := From(r.Context())
	s.Flashes = append(s.Flashes, msg)
	return m.Save(w, s)
}

// PopFlashes returns and clears pending flashes. Must be called before the
// response body is written.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	s := From(r.Context())
	if len(s.Flashes) == 0 {
		return nil
	}
	flashes := s.Flashes
	s.Flashes = nil
	if err := m.Save(w, s); err != nil {
		log.Error().Err(err).Msg("clear flashes")
	}
	return flashes
}
