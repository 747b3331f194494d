package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Lengths are rune counts; validator measures strings with utf8.RuneCountInString.
type movieForm struct {
	Title string `validate:"required,max=60"`
	Year  string `validate:"required,len=4"`
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type settingsForm struct {
	Name string `validate:"required,max=20"`
}

func parseMovieForm(r *http.Request) (movieForm, bool) {
	if err := r.ParseForm(); err != nil {
		return movieForm{}, false
	}
	f := movieForm{
		Title: r.PostForm.Get("title"),
		Year:  r.PostForm.Get("year"),
	}
	return f, validate.Struct(f) == nil
}

func parseLoginForm(r *http.Request) (loginForm, bool) {
	if err := r.ParseForm(); err != nil {
		return loginForm{}, false
	}
	f := loginForm{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	return f, validate.Struct(f) == nil
}

func parseSettingsForm(r *http.Request) (settingsForm, bool) {
	if err := r.ParseForm(); err != nil {
		return settingsForm{}, false
	}
	f := settingsForm{Name: r.PostForm.Get("name")}
	return f, validate.Struct(f) == nil
}

// movieID parses the {id} URL param. ok is false for anything that is not a
// positive integer.
func movieID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ==========================
// URL builders
// ==========================
func indexURL() string { return "/" }

func editURL(id int) string { return "/movie/edit/" + strconv.Itoa(id) }

func userURL(name string) string { return "/user/" + url.PathEscape(name) }

func testURL(query url.Values) string {
	if len(query) == 0 {
		return "/test"
	}
	return "/test?" + query.Encode()
}

func loginURL(next string) string {
	if next == "" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// safeNext returns next when it is a local absolute path, "/" otherwise.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return indexURL()
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return indexURL()
	}
	return next
}
