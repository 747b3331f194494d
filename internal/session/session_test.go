package session

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager([]byte("test-secret"), Options{CookieName: "wl", TTL: time.Hour})
}

// capture runs m.Middleware around fn and returns the session fn observed.
func capture(t *testing.T, m *Manager, req *http.Request, fn func(w http.ResponseWriter, r *http.Request)) (*Session, *httptest.ResponseRecorder) {
	t.Helper()
	var seen *Session
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = From(r.Context())
		if fn != nil {
			fn(w, r)
		}
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.NotNil(t, seen)
	return seen, rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			require.Nil(t, found, "session cookie set more than once")
			found = c
		}
	}
	require.NotNil(t, found, "session cookie not set")
	return found
}

func TestMiddleware_NoCookie(t *testing.T) {
	m := newTestManager()
	s, _ := capture(t, m, httptest.NewRequest("GET", "/", nil), nil)
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Flashes)
}

func TestLogin_RoundTrip(t *testing.T) {
	m := newTestManager()

	_, rr := capture(t, m, httptest.NewRequest("POST", "/login", nil), func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, m.Login(w, r, 7))
		require.NoError(t, m.Flash(w, r, "Login success"))
	})
	c := sessionCookie(t, rr, "wl")
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 3600, c.MaxAge)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(c)
	s, _ := capture(t, m, req, nil)
	assert.True(t, s.Authenticated())
	assert.Equal(t, 7, s.UserID)
	assert.Equal(t, []string{"Login success"}, s.Flashes)
}

func TestPopFlashes_ConsumesMessages(t *testing.T) {
	m := newTestManager()
	token, err := m.Encode(&Session{UserID: 1, Flashes: []string{"Item created", "Item updated"}})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "wl", Value: token})

	var popped []string
	_, rr := capture(t, m, req, func(w http.ResponseWriter, r *http.Request) {
		popped = m.PopFlashes(w, r)
	})
	assert.Equal(t, []string{"Item created", "Item updated"}, popped)

	next := httptest.NewRequest("GET", "/", nil)
	next.AddCookie(sessionCookie(t, rr, "wl"))
	s, _ := capture(t, m, next, nil)
	assert.Equal(t, 1, s.UserID, "user survives flash consumption")
	assert.Empty(t, s.Flashes)
}

func TestPopFlashes_NoneLeavesCookieAlone(t *testing.T) {
	m := newTestManager()
	_, rr := capture(t, m, httptest.NewRequest("GET", "/", nil), func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, m.PopFlashes(w, r))
	})
	assert.Empty(t, rr.Header().Values("Set-Cookie"))
}

func TestPopFlashes_LogsSaveError(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	m := NewManager([]byte{}, Options{CookieName: "wl"})
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithSession(req.Context(), &Session{Flashes: []string{"Item created."}}))

	got := m.PopFlashes(httptest.NewRecorder(), req)
	assert.Equal(t, []string{"Item created."}, got)
	assert.Contains(t, buf.String(), "clear flashes")
}

func TestLogout_ClearsUserKeepsFlash(t *testing.T) {
	m := newTestManager()
	token, err := m.Encode(&Session{UserID: 3})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "wl", Value: token})
	_, rr := capture(t, m, req, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, m.Logout(w, r))
		require.NoError(t, m.Flash(w, r, "Goodbye"))
	})

	next := httptest.NewRequest("GET", "/", nil)
	next.AddCookie(sessionCookie(t, rr, "wl"))
	s, _ := capture(t, m, next, nil)
	assert.False(t, s.Authenticated())
	assert.Equal(t, []string{"Goodbye"}, s.Flashes)
}

func TestLogout_EmptySessionExpiresCookie(t *testing.T) {
	m := newTestManager()
	token, err := m.Encode(&Session{UserID: 3})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "wl", Value: token})
	_, rr := capture(t, m, req, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, m.Logout(w, r))
	})
	c := sessionCookie(t, rr, "wl")
	assert.Equal(t, "", c.Value)
	assert.True(t, c.MaxAge < 0)
}

func TestMiddleware_RejectsForeignSignature(t *testing.T) {
	other := NewManager([]byte("another-secret"), Options{CookieName: "wl"})
	token, err := other.Encode(&Session{UserID: 1})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "wl", Value: token})
	s, _ := capture(t, newTestManager(), req, nil)
	assert.False(t, s.Authenticated())
}

func TestMiddleware_RejectsExpired(t *testing.T) {
	m := NewManager([]byte("test-secret"), Options{CookieName: "wl", TTL: time.Nanosecond})
	token, err := m.Encode(&Session{UserID: 1})
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "wl", Value: token})
	s, _ := capture(t, m, req, nil)
	assert.False(t, s.Authenticated())
}

func TestSave_KeepsOtherCookies(t *testing.T) {
	m := newTestManager()
	rr := httptest.NewRecorder()
	http.SetCookie(rr, &http.Cookie{Name: "theme", Value: "dark"})
	require.NoError(t, m.Save(rr, &Session{UserID: 1}))
	require.NoError(t, m.Save(rr, &Session{UserID: 2}))

	names := map[string]int{}
	for _, c := range rr.Result().Cookies() {
		names[c.Name]++
	}
	assert.Equal(t, 1, names["theme"])
	assert.Equal(t, 1, names["wl"])
}
