// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"plaza/config"
	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/delivery/http/flash"
	"plaza/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed templates
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page is the data every template receives. Data holds the page specific view.
type Page struct {
	Title     string
	User      *entity.User
	Flashes   []flash.Message
	CSRFToken string
	RequestID string
	Data      any
}

// NewPage fills the request scoped fields of a page.
func NewPage(c echo.Context, title string, data any) *Page {
	token, _ := c.Get("csrf").(string)

	return &Page{
		Title:     title,
		User:      deliverycontext.GetUser(c),
		CSRFToken: token,
		RequestID: deliverycontext.GetRequestID(c),
		Data:      data,
	}
}

// Renderer implements echo.Renderer over the embedded templates.
// Each page is parsed together with the shared layout under its base name.
type Renderer struct {
	pages map[string]*template.Template
}

func New(cfg *config.Config) (*Renderer, error) {
	loc := cfg.Economy.Location()
	funcs := template.FuncMap{
		"datetime": func(t time.Time) string {
			return t.In(loc).Format("2006-01-02 15:04")
		},
		"mediaURL": func(key string) string {
			if key == "" {
				return ""
			}

			return "/media/" + strings.TrimPrefix(key, "/")
		},
		"displayName": func(user *entity.User) string {
			if user == nil {
				return ""
			}

			return user.Profile.DisplayName(user.Username)
		},
		"deref": func(v *int) int {
			if v == nil {
				return 0
			}

			return *v
		},
		"ownedBy": func(plot *entity.LandPlot, user *entity.User) bool {
			return user != nil && plot.IsOwnedBy(user.ID)
		},
	}

	layout, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse layout")
	}

	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list page templates")
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		tmpl, cloneErr := layout.Clone()
		if cloneErr != nil {
			return nil, errors.Wrap(cloneErr, "failed to clone layout")
		}
		if _, parseErr := tmpl.ParseFS(templateFS, file); parseErr != nil {
			return nil, errors.Wrapf(parseErr, "failed to parse %s", file)
		}

		pages[strings.TrimSuffix(path.Base(file), ".html")] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}

	return errors.WithStack(tmpl.ExecuteTemplate(w, "layout", data))
}
