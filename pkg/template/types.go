package template

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType enumerates the supported field kinds.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypePhone    FieldType = "phone"
	FieldTypeEmail    FieldType = "email"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect, FieldTypeBoolean,
		FieldTypeNumber, FieldTypeDate, FieldTypePhone, FieldTypeEmail:
		return true
	}
	return false
}

// FieldSpec describes the rule set for a single template field. Use
// NewFieldSpec to construct one; the zero value carries no constraints.
type FieldSpec struct {
	Type        FieldType
	Required    bool
	MaxLength   int
	MinValue    *float64
	MaxValue    *float64
	Options     []string
	Pattern     string
	Description string
	Example     any

	compiled *regexp.Regexp
}

// FieldOption customises a FieldSpec during construction.
type FieldOption func(*FieldSpec)

// WithRequired marks the field as mandatory.
func WithRequired() FieldOption {
	return func(s *FieldSpec) {
		s.Required = true
	}
}

// WithMaxLength caps the length of the field's stringified value, counted in
// runes.
func WithMaxLength(n int) FieldOption {
	return func(s *FieldSpec) {
		s.MaxLength = n
	}
}

// WithMinValue sets the inclusive lower bound for number fields.
func WithMinValue(v float64) FieldOption {
	return func(s *FieldSpec) {
		bound := v
		s.MinValue = &bound
	}
}

// WithMaxValue sets the inclusive upper bound for number fields.
func WithMaxValue(v float64) FieldOption {
	return func(s *FieldSpec) {
		bound := v
		s.MaxValue = &bound
	}
}

// WithOptions declares the allowed values for select fields. Order is
// preserved for display.
func WithOptions(options ...string) FieldOption {
	return func(s *FieldSpec) {
		s.Options = append([]string(nil), options...)
	}
}

// WithPattern attaches a regular expression the stringified value must match
// in full. The expression is anchored at both ends during construction.
func WithPattern(pattern string) FieldOption {
	return func(s *FieldSpec) {
		s.Pattern = pattern
	}
}

// WithDescription sets the human readable label used in violation messages
// and rendered documents.
func WithDescription(desc string) FieldOption {
	return func(s *FieldSpec) {
		s.Description = desc
	}
}

// WithExample attaches a sample value. Display metadata only; it has no
// validation effect.
func WithExample(example any) FieldOption {
	return func(s *FieldSpec) {
		s.Example = example
	}
}

// NewFieldSpec builds a FieldSpec, rejecting constraint combinations that do
// not make sense for the field type. Template authoring mistakes surface here
// rather than silently at validation time.
func NewFieldSpec(fieldType FieldType, options ...FieldOption) (FieldSpec, error) {
	spec := FieldSpec{Type: fieldType}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&spec)
	}

	if !fieldType.Valid() {
		return FieldSpec{}, fmt.Errorf("template: unknown field type %q", fieldType)
	}
	if spec.MaxLength < 0 {
		return FieldSpec{}, fmt.Errorf("template: %s field: max length must not be negative", fieldType)
	}
	if fieldType == FieldTypeSelect && len(spec.Options) == 0 {
		return FieldSpec{}, fmt.Errorf("template: select field requires at least one option")
	}
	if fieldType != FieldTypeSelect && len(spec.Options) > 0 {
		return FieldSpec{}, fmt.Errorf("template: options are only valid on select fields, not %q", fieldType)
	}
	if (spec.MinValue != nil || spec.MaxValue != nil) && fieldType != FieldTypeNumber {
		return FieldSpec{}, fmt.Errorf("template: numeric bounds are only valid on number fields, not %q", fieldType)
	}
	if spec.MinValue != nil && spec.MaxValue != nil && *spec.MinValue > *spec.MaxValue {
		return FieldSpec{}, fmt.Errorf("template: min value %v exceeds max value %v", *spec.MinValue, *spec.MaxValue)
	}
	if spec.Pattern != "" {
		compiled, err := regexp.Compile(anchorPattern(spec.Pattern))
		if err != nil {
			return FieldSpec{}, fmt.Errorf("template: invalid pattern %q: %w", spec.Pattern, err)
		}
		spec.compiled = compiled
	}

	return spec, nil
}

// MustNewFieldSpec panics on construction failure. Useful for built-in
// template definitions and tests.
func MustNewFieldSpec(fieldType FieldType, options ...FieldOption) FieldSpec {
	spec, err := NewFieldSpec(fieldType, options...)
	if err != nil {
		panic(err)
	}
	return spec
}

// MatchesPattern reports whether value fully matches the spec's pattern. It
// returns true when no pattern is configured.
func (s FieldSpec) MatchesPattern(value string) bool {
	if s.compiled == nil {
		return true
	}
	return s.compiled.MatchString(value)
}

// HasPattern reports whether a pattern constraint is configured.
func (s FieldSpec) HasPattern() bool {
	return s.compiled != nil
}

// anchorPattern wraps the expression so partial matches fail. Wrapping an
// already anchored expression in a non-capturing group is harmless.
func anchorPattern(pattern string) string {
	return "^(?:" + pattern + ")$"
}

// Field pairs a field name with its specification inside a template.
type Field struct {
	Name string
	Spec FieldSpec
}

// Label returns the display name used in violation messages: the description
// when available, otherwise the field key.
func (f Field) Label() string {
	if desc := strings.TrimSpace(f.Spec.Description); desc != "" {
		return desc
	}
	return f.Name
}

// Template is a named, ordered set of field specifications plus descriptive
// metadata. Immutable once constructed.
type Template struct {
	name        string
	description string
	category    string
	compliance  []string
	version     string
	fields      []Field
	index       map[string]int
}

// TemplateOption customises a Template during construction.
type TemplateOption func(*Template) error

// WithTemplateDescription sets the template's display description.
func WithTemplateDescription(desc string) TemplateOption {
	return func(t *Template) error {
		t.description = desc
		return nil
	}
}

// WithCategory tags the template with a grouping category.
func WithCategory(category string) TemplateOption {
	return func(t *Template) error {
		t.category = category
		return nil
	}
}

// WithCompliance records compliance regimes the template honours, e.g.
// "hipaa" or "gdpr". Consumed by the rendering layer only.
func WithCompliance(flags ...string) TemplateOption {
	return func(t *Template) error {
		t.compliance = append(t.compliance, flags...)
		return nil
	}
}

// WithVersion records the source document version the template came from.
func WithVersion(version string) TemplateOption {
	return func(t *Template) error {
		t.version = version
		return nil
	}
}

// WithField appends a field specification. Field order is the declaration
// order; duplicate names are rejected.
func WithField(name string, spec FieldSpec) TemplateOption {
	return func(t *Template) error {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("template %q: field name is required", t.name)
		}
		if _, exists := t.index[trimmed]; exists {
			return fmt.Errorf("template %q: duplicate field %q", t.name, trimmed)
		}
		t.index[trimmed] = len(t.fields)
		t.fields = append(t.fields, Field{Name: trimmed, Spec: spec})
		return nil
	}
}

// New constructs a Template applying the provided options in order.
func New(name string, options ...TemplateOption) (Template, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Template{}, fmt.Errorf("template: name is required")
	}

	tpl := Template{
		name:  trimmed,
		index: make(map[string]int),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(&tpl); err != nil {
			return Template{}, err
		}
	}
	return tpl, nil
}

// MustNew panics if the template cannot be constructed.
func MustNew(name string, options ...TemplateOption) Template {
	tpl, err := New(name, options...)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Name returns the template's registry key.
func (t Template) Name() string { return t.name }

// Description returns the display description.
func (t Template) Description() string { return t.description }

// Category returns the grouping category.
func (t Template) Category() string { return t.category }

// Version returns the source document version, if any.
func (t Template) Version() string { return t.version }

// Compliance returns a copy of the compliance flags.
func (t Template) Compliance() []string {
	return append([]string(nil), t.compliance...)
}

// Fields returns the field sequence in declaration order. The slice is a
// copy; the specs it carries are shared but immutable.
func (t Template) Fields() []Field {
	return append([]Field(nil), t.fields...)
}

// Field looks up a field specification by name.
func (t Template) Field(name string) (Field, bool) {
	idx, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[idx], true
}

// Len returns the number of fields.
func (t Template) Len() int { return len(t.fields) }

// RequiredCount returns how many fields are marked required.
func (t Template) RequiredCount() int {
	count := 0
	for _, field := range t.fields {
		if field.Spec.Required {
			count++
		}
	}
	return count
}
