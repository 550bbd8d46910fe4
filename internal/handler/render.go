package handler

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/tutor-booking/internal/model"
)

const layoutFile = "base.html"

// View is the value every page template executes with.
type View struct {
	CSRF string // token for the hidden csrf field, empty when CSRF is off
	Data any
}

// Renderer renders the page templates as echo views.  Each page is
// parsed together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every *.html in dir of fsys.
func NewRenderer(fsys fs.FS, dir string) (*Renderer, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	layout := path.Join(dir, layoutFile)
	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		name := path.Base(f)
		if name == layoutFile {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, layout, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	if len(r.pages) == 0 {
		return nil, fmt.Errorf("no page templates in %s", dir)
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	token, _ := c.Get(echomw.DefaultCSRFConfig.ContextKey).(string)
	return t.ExecuteTemplate(w, "base", View{CSRF: token, Data: data})
}

var funcs = template.FuncMap{
	"dayLabel": model.WeekdayLabel,
	"lower":    strings.ToLower,
	"rating": func(r *float64) string {
		if r == nil {
			return "нет"
		}
		return strconv.FormatFloat(*r, 'f', 1, 64)
	},
	"excerpt": func(s string, n int) string {
		if utf8.RuneCountInString(s) <= n {
			return s
		}
		return string([]rune(s)[:n]) + "…"
	},
}
