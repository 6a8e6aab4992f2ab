// Package views renders the HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"tps-admin/domain/models"
	"tps-admin/pkg/i18n"
)

//go:embed templates/*.html
var files embed.FS

const (
	PagePersonList    = "person_list.html"
	PagePersonForm    = "person_form.html"
	PageConfirmDelete = "confirm_delete.html"
)

// ListView is the person list page.
type ListView struct {
	Lang  string
	Title string
	Rows  []models.PersonRecord
}

// FormView is the add/edit page.
type FormView struct {
	Lang        string
	Title       string
	SubmitLabel string
	Error       string
	Action      string
	Person      models.Person
	Cities      []models.City
}

// ConfirmView asks before deleting the row with ID.
type ConfirmView struct {
	Lang   string
	Title  string
	Prompt string
	ID     int64
	Row    models.PersonRecord
	Found  bool
}

type citySelect struct {
	Field   string
	Current string
	Cities  []models.City
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer(translator *i18n.Translator) (*Renderer, error) {
	funcs := template.FuncMap{
		"t": func(key string) string {
			return translator.T(key)
		},
		"citySelect": func(field string, person models.Person, cities []models.City) citySelect {
			return citySelect{
				Field:   field,
				Current: person.FormValue(models.PersonField(field)),
				Cities:  cities,
			}
		},
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PagePersonList, PagePersonForm, PageConfirmDelete} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render writes page with data. Output is buffered so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data interface{}) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
