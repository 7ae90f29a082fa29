// Package web bundles the HTML views rendered by the board.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed pages/thanks.html
var ThanksPage []byte

// Templates parses every view. Each file defines one named template.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
