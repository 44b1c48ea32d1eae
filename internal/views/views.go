// Package views renders the server-side HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/leodalati/Employee-Record-Management-System/internal/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// ErrTemplateNotFound means a page was requested that was never defined.
var ErrTemplateNotFound = errors.New("template not found")

// Page names the router renders.
const (
	PageLogin          = "login"
	PageEmployeeList   = "employee_list"
	PageEmployeeCreate = "employee_create"
	PageEmployeeEdit   = "employee_edit"
	PageEmployeeDelete = "employee_delete"
	PageError          = "error"
)

// Pages lists every page that must exist for the application to start.
var Pages = []string{
	PageLogin, PageEmployeeList, PageEmployeeCreate, PageEmployeeEdit, PageEmployeeDelete, PageError,
}

// Page is the data every template receives.
type Page struct {
	Title   string
	User    *dto.UserView
	Flashes []string
	Data    any
}

// ErrorData is the Data of the error page. Detail is empty in production.
type ErrorData struct {
	Status  int
	Message string
	Detail  string
}

type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates and checks that every required page is defined.
func New(required ...string) (*Renderer, error) {
	tmpl, err := template.New("views").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r := &Renderer{tmpl: tmpl}
	for _, name := range required {
		if r.tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
	}
	return r, nil
}

// Render executes the named page into w. Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t := r.tmpl.Lookup(name)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded assets.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
