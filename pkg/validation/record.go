package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formval/pkg/template"
)

// Record is the concrete key-value payload validated against a template.
// Values are scalars: strings, numbers, or booleans.
type Record map[string]any

// ValidateAgainst checks a record against a template and returns the full
// violation list. Two passes: required-presence first, then per-field content
// checks in template field order. A required-but-absent field is reported
// even when no content rule would have touched it, and content rules run only
// on fields the template defines. Record keys absent from the template are
// silently ignored, so extended payloads never fail validation.
func ValidateAgainst(record Record, tpl template.Template) Result {
	var violations []Violation

	for _, field := range tpl.Fields() {
		if !field.Spec.Required {
			continue
		}
		value, ok := record[field.Name]
		if !ok || strings.TrimSpace(Stringify(value)) == "" {
			violations = append(violations, Violation{
				Field:   field.Name,
				Rule:    RuleRequired,
				Message: fmt.Sprintf("missing required field: %s", field.Label()),
			})
		}
	}

	for _, field := range tpl.Fields() {
		value, ok := record[field.Name]
		if !ok {
			continue
		}
		violations = append(violations, CheckField(field, value)...)
	}

	return Result{Violations: violations}
}

// Validator resolves template names through a registry before validating.
type Validator struct {
	registry *template.Registry
}

// New constructs a Validator backed by the supplied registry.
func New(registry *template.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks a record against the named template. It returns
// template.NotFoundError when the name is not registered; a failed record is
// not an error, its violations ride in the Result.
func (v *Validator) Validate(record Record, templateName string) (Result, error) {
	if v == nil || v.registry == nil {
		return Result{}, fmt.Errorf("validation: validator requires a registry")
	}
	tpl, err := v.registry.Get(templateName)
	if err != nil {
		return Result{}, err
	}
	return ValidateAgainst(record, tpl), nil
}
