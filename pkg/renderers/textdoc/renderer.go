// Package textdoc renders a validated record as a plain-text document for
// terminal output or log attachment.
package textdoc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/renderers/htmldoc"
)

// Renderer emits plain text documents.
type Renderer struct{}

// New constructs the textdoc renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "textdoc"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render produces the text document for the supplied record.
func (r *Renderer) Render(_ context.Context, doc render.Document, opts render.Options) ([]byte, error) {
	generatedAt := doc.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = doc.Template.Description()
		if title == "" {
			title = doc.Template.Name()
		}
		title += " Report"
	}

	var b strings.Builder
	rule := strings.Repeat("=", len(title))

	fmt.Fprintf(&b, "%s\n%s\n\n", title, rule)
	fmt.Fprintf(&b, "Generated:  %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Template:   %s\n", doc.Template.Name())
	if doc.Version != "" {
		fmt.Fprintf(&b, "Version:    %s\n", doc.Version)
	}
	if category := doc.Template.Category(); category != "" {
		fmt.Fprintf(&b, "Category:   %s\n", category)
	}
	b.WriteString("\n")

	width := 0
	for _, field := range doc.Template.Fields() {
		if _, ok := doc.Record[field.Name]; !ok {
			continue
		}
		if n := len(field.Label()); n > width {
			width = n
		}
	}

	for _, field := range doc.Template.Fields() {
		value, ok := doc.Record[field.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%-*s  %s\n", width, field.Label(), htmldoc.DisplayValue(field.Spec, value))
	}

	b.WriteString("\nConfidential document. Contains personal information; handle accordingly.\n")

	return []byte(b.String()), nil
}
