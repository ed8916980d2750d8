// Package web holds the embedded server-rendered views. One template per
// page, each composed with the shared base layout.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"login", "log", "dashboard", "manage"}

var funcs = template.FuncMap{
	// json embeds chart data for the client-side plotting script.
	"json": func(v interface{}) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(b), nil
	},
}

type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS,
			"templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		templates[page] = t
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(w io.Writer, page string, data interface{}) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "base.html", data)
}
