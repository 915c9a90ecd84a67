// Package formval validates structured records against named field templates
// and renders validated records as formatted documents. This file exposes the
// convenience entry points; the pkg subpackages carry the full API.
package formval

import (
	"context"
	"log/slog"
	"time"

	"github.com/goliatone/go-formval/internal/config"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/renderers/htmldoc"
	"github.com/goliatone/go-formval/pkg/renderers/textdoc"
	"github.com/goliatone/go-formval/pkg/stats"
	"github.com/goliatone/go-formval/pkg/template"
	"github.com/goliatone/go-formval/pkg/validation"
)

// Record aliases the validation payload type for convenience.
type Record = validation.Record

// Result aliases the validation outcome type.
type Result = validation.Result

// Violation aliases the structured violation type.
type Violation = validation.Violation

// DefaultTemplates builds a registry holding the built-in template set
// (medical_form, employee_form).
func DefaultTemplates() *template.Registry {
	return config.DefaultRegistry()
}

// LoadTemplates reads a JSON or YAML template configuration and builds a
// registry. Parse and schema failures are returned as-is; pass a nil logger
// to keep the loader quiet.
func LoadTemplates(path string, logger *slog.Logger) (*template.Registry, error) {
	var opts []config.LoadOption
	if logger != nil {
		opts = append(opts, config.WithLogger(logger))
	}
	result, err := config.Load(path, opts...)
	if err != nil {
		return nil, err
	}
	return result.Registry, nil
}

// LoadTemplatesOrDefault behaves like LoadTemplates but falls back to the
// built-in default set when the file is absent or broken, logging the
// condition rather than failing hard.
func LoadTemplatesOrDefault(path string, logger *slog.Logger) *template.Registry {
	var opts []config.LoadOption
	if logger != nil {
		opts = append(opts, config.WithLogger(logger))
	}
	result, _ := config.LoadOrDefault(path, opts...)
	return result.Registry
}

// WriteDefaultTemplates persists the built-in template document to path. This
// is the explicit bootstrap step for hosts that want an editable config file.
func WriteDefaultTemplates(path string) error {
	return config.WriteDefault(path)
}

// ValidateRecord checks a record against the named template in the registry.
func ValidateRecord(record Record, templateName string, registry *template.Registry) (Result, error) {
	return validation.New(registry).Validate(record, templateName)
}

// SummarizeRecords aggregates validation outcomes and fill metrics for a
// batch of records.
func SummarizeRecords(records []Record, templateName string, registry *template.Registry) (stats.Summary, error) {
	return stats.New(registry).Summarize(records, templateName)
}

// Renderers builds a registry with the built-in document renderers
// registered: htmldoc and textdoc.
func Renderers() (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := htmldoc.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(textdoc.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderDocument formats a validated record with the named renderer. The
// record is expected to have passed ValidateRecord; renderers perform no
// validation of their own.
func RenderDocument(ctx context.Context, record Record, tpl template.Template, rendererName string, opts render.Options) ([]byte, error) {
	registry, err := Renderers()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, render.Document{
		Template:    tpl,
		Record:      record,
		Version:     tpl.Version(),
		GeneratedAt: time.Now(),
	}, opts)
}

// SampleRecord builds example data for a template from its field Example
// metadata, substituting a type-appropriate default when a field has none.
func SampleRecord(tpl template.Template) Record {
	record := make(Record, tpl.Len())
	for _, field := range tpl.Fields() {
		if field.Spec.Example != nil {
			record[field.Name] = field.Spec.Example
			continue
		}
		switch field.Spec.Type {
		case template.FieldTypeBoolean:
			record[field.Name] = true
		case template.FieldTypeNumber:
			record[field.Name] = 100
		case template.FieldTypeDate:
			record[field.Name] = "2024-01-01"
		case template.FieldTypeSelect:
			if options := field.Spec.Options; len(options) > 0 {
				record[field.Name] = options[0]
			}
		default:
			record[field.Name] = "Sample " + field.Name
		}
	}
	return record
}
