// Package render produces the three HTML pages of the login flow. The
// "BAD REQUEST 400" and "OK 200" headings are page text only; callers always
// answer with status 200.
package render

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// ProviderLink is one sign-in action on the provider selection page.
type ProviderLink struct {
	Label string
	Href  string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNew is New for package-level and test setup.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// ChooseProvider renders one sign-in action per provider, in order.
func (r *Renderer) ChooseProvider(w io.Writer, providers []ProviderLink) error {
	return r.tmpl.ExecuteTemplate(w, "choose", providers)
}

// Error renders the failure page listing every message in order.
func (r *Renderer) Error(w io.Writer, messages []string) error {
	return r.tmpl.ExecuteTemplate(w, "error", messages)
}

// Success renders the logged-in page for login.
func (r *Renderer) Success(w io.Writer, login string) error {
	return r.tmpl.ExecuteTemplate(w, "success", login)
}
