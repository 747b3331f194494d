package views

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/watchlist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_IndexAnonymous(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = v.Render(&buf, Index, Page{
		User:    &models.User{Name: "Bruce"},
		Flashes: []string{"Item created"},
		Movies:  []models.Movie{{ID: 1, Title: "Leon", Year: "1994"}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Bruce's Watchlist")
	assert.Contains(t, out, "1 Titles")
	assert.Contains(t, out, "Leon - 1994")
	assert.Contains(t, out, `<div class="alert">Item created</div>`)
	assert.Contains(t, out, `href="/login"`)
	assert.NotContains(t, out, `action="/movie/delete/1"`, "anonymous users get no delete form")
	assert.NotContains(t, out, `name="title"`, "anonymous users get no create form")
}

func TestRender_EscapesOwnerName(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, Index, Page{User: &models.User{Name: `O'Neil <b>`}}))

	out := buf.String()
	assert.Contains(t, out, "O&#39;Neil &lt;b&gt;'s Watchlist")
	assert.NotContains(t, out, "<b>")
}

func TestRender_IndexLoggedIn(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	user := &models.User{ID: 1, Name: "Bruce"}
	var buf bytes.Buffer
	err = v.Render(&buf, Index, Page{
		User:        user,
		CurrentUser: user,
		Movies:      []models.Movie{{ID: 4, Title: "Leon", Year: "1994"}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `action="/movie/delete/4"`)
	assert.Contains(t, out, `href="/movie/edit/4"`)
	assert.Contains(t, out, `href="/logout"`)
	assert.Contains(t, out, `name="title"`)
}

func TestRender_EscapesTitles(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = v.Render(&buf, Index, Page{Movies: []models.Movie{{ID: 1, Title: "<script>x</script>", Year: "2000"}}})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>x</script>")
}

func TestRender_NoUser(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, NotFound, Page{}))
	assert.Contains(t, buf.String(), "<title>Watchlist</title>")
	assert.Contains(t, buf.String(), "Page Not Found")
}

func TestRender_LoginKeepsNext(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, Login, Page{Next: "/settings"}))
	out := strings.ToLower(buf.String())
	assert.Contains(t, out, `action="/login?next=%2fsettings"`)
}

func TestRender_Unknown(t *testing.T) {
	v, err := New()
	require.NoError(t, err)
	assert.Error(t, v.Render(&bytes.Buffer{}, "missing.html", Page{}))
}

func TestStatic(t *testing.T) {
	rr := httptest.NewRecorder()
	Static().ServeHTTP(rr, httptest.NewRequest("GET", "/style.css", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ".movie-list")
}
