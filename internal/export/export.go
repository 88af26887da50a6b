// Package export renders a GameSpec as a standalone HTML page that runs the
// game in a browser.
package export

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/promptplay/gamecore/internal/gamespec"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

const defaultTitle = "Untitled Game"

type Options struct {
	// Title overrides metadata.title.
	Title        string
	RuntimeURL   string
	CanvasWidth  int
	CanvasHeight int
	Credits      bool
}

type pageData struct {
	Title      string
	Spec       template.JS
	RuntimeURL string
	Width      int
	Height     int
	Credits    bool
}

// HTML writes the page for doc to out. The spec is embedded as JSON inside a
// <script type="application/json"> element; json.Marshal escapes '<', '>'
// and '&', so the document cannot close the element early.
func HTML(out io.Writer, doc *gamespec.Document, opts Options) error {
	spec, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode spec: %w", err)
	}
	data := pageData{
		Title:      Title(doc, opts.Title),
		Spec:       template.JS(spec),
		RuntimeURL: opts.RuntimeURL,
		Width:      opts.CanvasWidth,
		Height:     opts.CanvasHeight,
		Credits:    opts.Credits,
	}
	if data.Width <= 0 {
		data.Width = 800
	}
	if data.Height <= 0 {
		data.Height = 600
	}
	if err := page.Execute(out, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// Title picks the page title: the override, then metadata.title, then a
// placeholder.
func Title(doc *gamespec.Document, override string) string {
	if override != "" {
		return override
	}
	if doc.Metadata != nil {
		if t, ok := doc.Metadata.Get("title"); ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	return defaultTitle
}
