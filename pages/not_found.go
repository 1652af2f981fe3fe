package pages

import (
	html_template "html/template"
	"io"
	"net/http"
)

// NotFound is rendered for any URL no other page matches.
type NotFound struct {
	tmpl *html_template.Template
}

func (n *NotFound) StatusCode() int { return http.StatusNotFound }

func (n *NotFound) Head(any) string { return title("Page not found") }

func (n *NotFound) Render(w io.Writer, data any) error { return execute(n.tmpl, w, data) }
