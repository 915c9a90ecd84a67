package render

import (
	"context"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formval/pkg/template"
	"github.com/goliatone/go-formval/pkg/validation"
)

// Document bundles a record with the template that owns it, ready for
// formatting. Callers are expected to validate the record first.
type Document struct {
	Template    template.Template
	Record      validation.Record
	Version     string
	GeneratedAt time.Time
}

// Options carries per-render overrides.
type Options struct {
	// Title overrides the document heading derived from the template
	// description.
	Title string
	// Theme supplies resolved go-theme tokens and CSS variables for renderers
	// that emit styled output.
	Theme *theme.RendererConfig
}

// Renderer produces a formatted document from a validated record.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc Document, opts Options) ([]byte, error)
}
