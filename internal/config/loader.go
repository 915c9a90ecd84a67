package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formval/pkg/template"
)

// ConfigError reports a template source that is missing, corrupt, or
// non-conformant with its embedded schema.
type ConfigError struct {
	Location string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config: %s: %v", e.Location, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// LoadResult bundles everything the loader produces from one document.
type LoadResult struct {
	Registry *template.Registry
	Settings Settings
	Version  string
	Source   string
}

// LoadOption customises loader behaviour.
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger     *slog.Logger
	skipSchema bool
}

// WithLogger injects a logger; the default discards output so the library
// stays quiet unless the host opts in.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(cfg *loadConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithoutSchemaCheck disables the validation_schema self-check.
func WithoutSchemaCheck() LoadOption {
	return func(cfg *loadConfig) {
		cfg.skipSchema = true
	}
}

func newLoadConfig(options []LoadOption) loadConfig {
	cfg := loadConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Load reads and parses the template configuration at path, self-validates it
// when a validation_schema is present, and builds the registry. Parse and
// schema failures surface as ConfigError.
func Load(path string, options ...LoadOption) (LoadResult, error) {
	cfg := newLoadConfig(options)

	raw, err := os.ReadFile(path)
	if err != nil {
		return LoadResult{}, &ConfigError{Location: path, Err: err}
	}

	doc, err := template.NewDocument(template.SourceFromFile(path), raw)
	if err != nil {
		return LoadResult{}, &ConfigError{Location: path, Err: err}
	}

	return loadDocument(doc, cfg)
}

// LoadDocument parses a pre-read configuration document.
func LoadDocument(doc template.Document, options ...LoadOption) (LoadResult, error) {
	return loadDocument(doc, newLoadConfig(options))
}

// LoadOrDefault behaves like Load but falls back to the built-in default
// template set when the file is absent or broken, logging the condition for
// operators instead of failing hard. The returned error, when non-nil, is the
// ConfigError that triggered the fallback; the LoadResult is always usable.
func LoadOrDefault(path string, options ...LoadOption) (LoadResult, error) {
	cfg := newLoadConfig(options)

	result, err := Load(path, options...)
	if err == nil {
		return result, nil
	}

	cfg.logger.Warn("template config unavailable, using built-in defaults",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)

	fallback, buildErr := BuildRegistry(Defaults())
	if buildErr != nil {
		// The default document is defined in this package; failing to build
		// it is a programming error.
		panic(buildErr)
	}

	defaults := Defaults()
	return LoadResult{
		Registry: fallback,
		Settings: defaults.Settings,
		Version:  defaults.Version,
		Source:   "builtin defaults",
	}, err
}

func loadDocument(doc template.Document, cfg loadConfig) (LoadResult, error) {
	parsed, err := Parse(doc)
	if err != nil {
		return LoadResult{}, err
	}

	if !cfg.skipSchema {
		if err := validateAgainstSchema(parsed, doc.Location()); err != nil {
			return LoadResult{}, err
		}
	}

	registry, err := BuildRegistry(parsed)
	if err != nil {
		return LoadResult{}, &ConfigError{Location: doc.Location(), Err: err}
	}

	cfg.logger.Info("template config loaded",
		slog.String("source", doc.Location()),
		slog.Int("templates", registry.Len()),
	)

	return LoadResult{
		Registry: registry,
		Settings: parsed.Settings,
		Version:  parsed.Version,
		Source:   doc.Location(),
	}, nil
}

// Parse decodes the raw document as YAML or JSON depending on the source
// extension, defaulting to JSON.
func Parse(doc template.Document) (*Doc, error) {
	raw := doc.Raw()
	location := doc.Location()

	var parsed Doc
	if isYAMLSource(location) {
		if err := yaml.Unmarshal(raw, &parsed); err != nil {
			return nil, &ConfigError{Location: location, Err: err}
		}
	} else {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, &ConfigError{Location: location, Err: err}
		}
	}

	if len(parsed.Templates) == 0 {
		return nil, &ConfigError{Location: location, Err: errors.New("document declares no templates")}
	}
	return &parsed, nil
}

// BuildRegistry constructs immutable templates from the parsed document.
// Field specification defects (unknown type, select without options, bad
// pattern) surface here, before any record is validated.
func BuildRegistry(doc *Doc) (*template.Registry, error) {
	registry := template.NewRegistry()

	for name, tplConfig := range doc.Templates {
		tpl, err := buildTemplate(name, tplConfig, doc.Version)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(tpl); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func buildTemplate(name string, cfg TemplateConfig, version string) (template.Template, error) {
	options := []template.TemplateOption{
		template.WithTemplateDescription(cfg.Description),
		template.WithCategory(cfg.Category),
		template.WithVersion(version),
	}
	if cfg.HIPAACompliant {
		options = append(options, template.WithCompliance("hipaa"))
	}
	if cfg.GDPRCompliant {
		options = append(options, template.WithCompliance("gdpr"))
	}

	for _, fieldName := range cfg.Fields.Names() {
		fieldConfig, _ := cfg.Fields.Get(fieldName)
		spec, err := buildFieldSpec(fieldConfig)
		if err != nil {
			return template.Template{}, fmt.Errorf("template %q, field %q: %w", name, fieldName, err)
		}
		options = append(options, template.WithField(fieldName, spec))
	}

	return template.New(name, options...)
}

func buildFieldSpec(cfg FieldConfig) (template.FieldSpec, error) {
	fieldType := template.FieldType(strings.TrimSpace(cfg.Type))
	if fieldType == "" {
		fieldType = template.FieldTypeText
	}

	var options []template.FieldOption
	if cfg.Required {
		options = append(options, template.WithRequired())
	}
	if cfg.MaxLength > 0 {
		options = append(options, template.WithMaxLength(cfg.MaxLength))
	}
	if cfg.MinValue != nil {
		options = append(options, template.WithMinValue(*cfg.MinValue))
	}
	if cfg.MaxValue != nil {
		options = append(options, template.WithMaxValue(*cfg.MaxValue))
	}
	if len(cfg.Options) > 0 {
		options = append(options, template.WithOptions(cfg.Options...))
	}
	if cfg.ValidationPattern != "" {
		options = append(options, template.WithPattern(cfg.ValidationPattern))
	}
	if cfg.Description != "" {
		options = append(options, template.WithDescription(cfg.Description))
	}
	if cfg.Example != nil {
		options = append(options, template.WithExample(cfg.Example))
	}

	return template.NewFieldSpec(fieldType, options...)
}

// validateAgainstSchema checks the document against its own embedded
// validation_schema when present.
func validateAgainstSchema(doc *Doc, location string) error {
	if len(doc.ValidationSchema) == 0 {
		return nil
	}

	schemaRaw, err := json.Marshal(doc.ValidationSchema)
	if err != nil {
		return &ConfigError{Location: location, Err: fmt.Errorf("encode validation_schema: %w", err)}
	}

	var schema openapi3.Schema
	if err := schema.UnmarshalJSON(schemaRaw); err != nil {
		return &ConfigError{Location: location, Err: fmt.Errorf("parse validation_schema: %w", err)}
	}

	payloadRaw, err := json.Marshal(doc)
	if err != nil {
		return &ConfigError{Location: location, Err: fmt.Errorf("encode document: %w", err)}
	}
	var payload map[string]any
	if err := json.Unmarshal(payloadRaw, &payload); err != nil {
		return &ConfigError{Location: location, Err: fmt.Errorf("decode document: %w", err)}
	}

	if err := schema.VisitJSON(payload); err != nil {
		return &ConfigError{Location: location, Err: fmt.Errorf("document does not conform to validation_schema: %w", err)}
	}
	return nil
}

func isYAMLSource(location string) bool {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
