package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/crucial707/watchlist/internal/models"
)

//go:embed templates static
var files embed.FS

// Pages rendered inside templates/layout.html.
const (
	Index    = "index.html"
	Edit     = "edit.html"
	Login    = "login.html"
	Settings = "settings.html"
	NotFound = "404.html"
	Error    = "500.html"
)

// Page is the data every template receives.
type Page struct {
	// User is the site owner shown in the header; nil before `admin` or `forge` ran.
	User *models.User
	// CurrentUser is the logged-in user, nil for anonymous requests.
	CurrentUser *models.User
	Flashes     []string

	Movies []models.Movie
	Movie  *models.Movie
	Next   string
}

// LoggedIn reports whether the request carries an authenticated session.
func (p Page) LoggedIn() bool {
	return p.CurrentUser != nil
}

type Views struct {
	pages map[string]*template.Template
}

// New parses the layout together with every page template.
func New() (*Views, error) {
	layout, err := files.ReadFile("templates/layout.html")
	if err != nil {
		return nil, err
	}

	v := &Views{pages: make(map[string]*template.Template)}
	for _, name := range []string{Index, Edit, Login, Settings, NotFound, Error} {
		content, err := files.ReadFile("templates/" + name)
		if err != nil {
			return nil, err
		}
		t, err := template.New("layout").Parse(string(layout))
		if err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
		if _, err := t.New(name).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// MustNew is New for program start-up, where a broken embedded template is fatal.
func MustNew() *Views {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Render executes page name into w. Callers writing to a ResponseWriter should
// render into a buffer first so a failing template never sends a partial page.
func (v *Views) Render(w io.Writer, name string, data Page) error {
	t, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Static serves the embedded stylesheet and other assets.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
