// Package htmldoc renders a validated record as a self-contained HTML
// document: title, metadata table, field table in template order, and a
// confidentiality footer.
package htmldoc

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formval/pkg/render"
	rendertemplate "github.com/goliatone/go-formval/pkg/render/template"
	gotemplate "github.com/goliatone/go-formval/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formval/pkg/template"
	"github.com/goliatone/go-formval/pkg/validation"
)

const displayDateLayout = "January 2, 2006"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits HTML documents. Record values are sanitized with bluemonday
// before they reach the template.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
}

// New constructs the htmldoc renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("htmldoc renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		policy:    bluemonday.StrictPolicy(),
	}, nil
}

func (r *Renderer) Name() string {
	return "htmldoc"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the HTML document for the supplied record. It trusts the
// caller's validation verdict and performs no rule checks of its own.
func (r *Renderer) Render(_ context.Context, doc render.Document, opts render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("htmldoc renderer: template renderer is nil")
	}

	generatedAt := doc.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	data := map[string]any{
		"title":         documentTitle(doc, opts),
		"template_name": doc.Template.Name(),
		"category":      doc.Template.Category(),
		"version":       doc.Version,
		"generated_at":  generatedAt.Format("2006-01-02 15:04:05"),
		"compliance":    complianceLine(doc.Template),
		"rows":          r.fieldRows(doc.Template, doc.Record),
		"theme_css":     themeCSS(opts.Theme),
	}

	result, err := r.templates.RenderTemplate("templates/document.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("htmldoc renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) fieldRows(tpl template.Template, record validation.Record) []map[string]any {
	rows := make([]map[string]any, 0, tpl.Len())
	for _, field := range tpl.Fields() {
		value, ok := record[field.Name]
		if !ok {
			continue
		}
		rows = append(rows, map[string]any{
			"label":   r.policy.Sanitize(field.Label()),
			"value":   r.policy.Sanitize(DisplayValue(field.Spec, value)),
			"type":    string(field.Spec.Type),
			"example": r.policy.Sanitize(validation.Stringify(field.Spec.Example)),
		})
	}
	return rows
}

// DisplayValue formats a record scalar for human consumption: booleans become
// Yes/No and dates are spelled out when they parse.
func DisplayValue(spec template.FieldSpec, value any) string {
	text := validation.Stringify(value)
	switch spec.Type {
	case template.FieldTypeBoolean:
		if b, ok := value.(bool); ok {
			if b {
				return "Yes"
			}
			return "No"
		}
	case template.FieldTypeDate:
		if parsed, err := time.Parse("2006-01-02", text); err == nil {
			return parsed.Format(displayDateLayout)
		}
	}
	return text
}

func documentTitle(doc render.Document, opts render.Options) string {
	if title := strings.TrimSpace(opts.Title); title != "" {
		return title
	}
	if desc := strings.TrimSpace(doc.Template.Description()); desc != "" {
		return desc + " Report"
	}
	return doc.Template.Name() + " Report"
}

func complianceLine(tpl template.Template) string {
	flags := tpl.Compliance()
	if len(flags) == 0 {
		return "General"
	}
	upper := make([]string, len(flags))
	for i, flag := range flags {
		upper[i] = strings.ToUpper(flag)
	}
	return strings.Join(upper, ", ") + " compliant"
}

func themeCSS(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}

	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
