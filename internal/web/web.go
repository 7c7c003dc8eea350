// Package web renders the server-side HTML pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"hawaii_tourism/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

var pages = []string{"home", "destination", "activities", "activity", "events", "error"}

type Renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"thumb": thumb,
	"date":  func(t time.Time) string { return t.Format("January 2, 2006") },
	"excerpt": func(short, long string) string {
		if short != "" {
			return short
		}
		return long
	},
}

func New() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/components.html")
	if err != nil {
		return nil, fmt.Errorf("parse base templates: %w", err)
	}
	r := &Renderer{base: base, pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := template.Must(base.Clone()).ParseFS(files, "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", p, err)
		}
		r.pages[p] = t
	}
	return r, nil
}

func thumb(v any) string {
	switch m := v.(type) {
	case *domain.Media:
		return m.Thumb()
	case domain.Media:
		return m.Thumb()
	}
	return ""
}

// Render executes a full page into w. The page is rendered into a buffer
// first so a template error never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, p Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// Component renders a single named component, e.g. "activity_grid".
func (r *Renderer) Component(w io.Writer, name string, data any) error {
	return r.base.ExecuteTemplate(w, name, data)
}
