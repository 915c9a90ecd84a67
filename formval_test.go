package formval

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/template"
)

func TestDefaultTemplates(t *testing.T) {
	registry := DefaultTemplates()
	want := []string{"employee_form", "medical_form"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("default templates mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleRecord_ValidatesAgainstDefaults(t *testing.T) {
	registry := DefaultTemplates()

	for _, name := range registry.List() {
		tpl, err := registry.Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}

		sample := SampleRecord(tpl)
		result, err := ValidateRecord(sample, name, registry)
		if err != nil {
			t.Fatalf("validate %s: %v", name, err)
		}
		if !result.Valid() {
			t.Errorf("%s: sample record must validate, got %v", name, result.Violations)
		}
	}
}

func TestValidateRecord_Violations(t *testing.T) {
	registry := DefaultTemplates()

	result, err := ValidateRecord(Record{
		"patient_id":    "p123",
		"date_of_birth": "1990-13-40",
	}, "medical_form", registry)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid() {
		t.Fatalf("expected an invalid result")
	}
	// missing patient_name and gender, then the two content violations
	if len(result.Violations) != 4 {
		t.Fatalf("expected 4 violations, got %v", result.Violations)
	}
}

func TestSummarizeRecords(t *testing.T) {
	registry := DefaultTemplates()
	sample := SampleRecord(mustGet(t, registry))

	summary, err := SummarizeRecords([]Record{
		sample,
		{"patient_id": "p123"},
	}, "medical_form", registry)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.ValidRecords != 1 || summary.InvalidRecords != 1 {
		t.Fatalf("counts: %+v", summary)
	}
}

func TestRenderDocument(t *testing.T) {
	registry := DefaultTemplates()
	tpl := mustGet(t, registry)
	sample := SampleRecord(tpl)

	for _, tc := range []struct {
		renderer string
		marker   string
	}{
		{"htmldoc", "<html"},
		{"textdoc", "Medical Intake Form Report"},
	} {
		out, err := RenderDocument(context.Background(), sample, tpl, tc.renderer, render.Options{})
		if err != nil {
			t.Fatalf("%s: render: %v", tc.renderer, err)
		}
		if !strings.Contains(string(out), tc.marker) {
			t.Errorf("%s: output missing %q", tc.renderer, tc.marker)
		}
	}
}

func TestRenderDocument_UnknownRenderer(t *testing.T) {
	registry := DefaultTemplates()
	tpl := mustGet(t, registry)

	_, err := RenderDocument(context.Background(), Record{}, tpl, "pdf", render.Options{})
	if err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestWriteDefaultTemplatesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping_rules.json")
	if err := WriteDefaultTemplates(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	registry, err := LoadTemplates(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if registry.Len() != 2 {
		t.Fatalf("expected 2 templates, got %d", registry.Len())
	}
}

func TestLoadTemplatesOrDefault_MissingFile(t *testing.T) {
	registry := LoadTemplatesOrDefault(filepath.Join(t.TempDir(), "absent.json"), nil)
	if registry == nil || registry.Len() != 2 {
		t.Fatalf("expected the default registry fallback")
	}
}

func TestRenderers(t *testing.T) {
	registry, err := Renderers()
	if err != nil {
		t.Fatalf("renderers: %v", err)
	}
	if diff := cmp.Diff([]string{"htmldoc", "textdoc"}, registry.List()); diff != "" {
		t.Fatalf("renderer list mismatch (-want +got):\n%s", diff)
	}
}

func mustGet(t *testing.T, registry *template.Registry) template.Template {
	t.Helper()
	tpl, err := registry.Get("medical_form")
	if err != nil {
		t.Fatalf("get medical_form: %v", err)
	}
	return tpl
}
