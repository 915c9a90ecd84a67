package htmldoc

import (
	"context"
	"strings"
	"testing"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/template"
	"github.com/goliatone/go-formval/pkg/validation"
)

func reportTemplate(t *testing.T) template.Template {
	t.Helper()
	tpl, err := template.New("medical_form",
		template.WithTemplateDescription("Medical Intake Form"),
		template.WithCategory("healthcare"),
		template.WithCompliance("hipaa"),
		template.WithVersion("1.0"),
		template.WithField("patient_name", template.MustNewFieldSpec(template.FieldTypeText,
			template.WithRequired(), template.WithDescription("Patient Name"))),
		template.WithField("date_of_birth", template.MustNewFieldSpec(template.FieldTypeDate,
			template.WithDescription("Date of Birth"))),
		template.WithField("emergency_contact", template.MustNewFieldSpec(template.FieldTypeBoolean,
			template.WithDescription("Has Emergency Contact"))),
	)
	if err != nil {
		t.Fatalf("build template: %v", err)
	}
	return tpl
}

func renderHTML(t *testing.T, doc render.Document, opts render.Options) string {
	t.Helper()
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRender_Document(t *testing.T) {
	tpl := reportTemplate(t)
	html := renderHTML(t, render.Document{
		Template: tpl,
		Record: validation.Record{
			"patient_name":      "Jane Chang",
			"date_of_birth":     "1990-01-15",
			"emergency_contact": true,
		},
		Version:     "1.0",
		GeneratedAt: time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC),
	}, render.Options{})

	for _, want := range []string{
		"Medical Intake Form Report",
		"Jane Chang",
		"January 15, 1990",
		"Yes",
		"HIPAA compliant",
		"2024-06-01 10:30:00",
		"healthcare",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRender_SkipsAbsentFields(t *testing.T) {
	tpl := reportTemplate(t)
	html := renderHTML(t, render.Document{
		Template: tpl,
		Record:   validation.Record{"patient_name": "Jane Chang"},
	}, render.Options{})

	if strings.Contains(html, "Date of Birth") {
		t.Fatalf("absent fields must not produce rows")
	}
}

func TestRender_SanitizesValues(t *testing.T) {
	tpl := reportTemplate(t)
	html := renderHTML(t, render.Document{
		Template: tpl,
		Record: validation.Record{
			"patient_name": `<script>alert("x")</script>Jane`,
		},
	}, render.Options{})

	if strings.Contains(html, "<script>") {
		t.Fatalf("script tags must be stripped:\n%s", html)
	}
	if !strings.Contains(html, "Jane") {
		t.Fatalf("text content must survive sanitization")
	}
}

func TestRender_TitleOverride(t *testing.T) {
	tpl := reportTemplate(t)
	html := renderHTML(t, render.Document{
		Template: tpl,
		Record:   validation.Record{},
	}, render.Options{Title: "Quarterly Intake Review"})

	if !strings.Contains(html, "Quarterly Intake Review") {
		t.Fatalf("expected the title override in output")
	}
}

func TestRender_ThemeCSS(t *testing.T) {
	tpl := reportTemplate(t)
	html := renderHTML(t, render.Document{
		Template: tpl,
		Record:   validation.Record{},
	}, render.Options{Theme: &theme.RendererConfig{
		CSSVars: map[string]string{
			"--color-primary": "#336699",
		},
	}})

	if !strings.Contains(html, "--color-primary: #336699;") {
		t.Fatalf("expected the theme variable in output:\n%s", html)
	}
	if !strings.Contains(html, ":root {") {
		t.Fatalf("expected a :root block")
	}
}

func TestRender_NoThemeNoStyleBlock(t *testing.T) {
	tpl := reportTemplate(t)
	html := renderHTML(t, render.Document{
		Template: tpl,
		Record:   validation.Record{},
	}, render.Options{})

	if strings.Contains(html, ":root {") {
		t.Fatalf("theme CSS must only appear when a theme is supplied")
	}
}

func TestDisplayValue(t *testing.T) {
	boolean := template.MustNewFieldSpec(template.FieldTypeBoolean)
	if got := DisplayValue(boolean, true); got != "Yes" {
		t.Fatalf("boolean true: %q", got)
	}
	if got := DisplayValue(boolean, false); got != "No" {
		t.Fatalf("boolean false: %q", got)
	}

	date := template.MustNewFieldSpec(template.FieldTypeDate)
	if got := DisplayValue(date, "1990-01-15"); got != "January 15, 1990" {
		t.Fatalf("date: %q", got)
	}
	// unparseable dates fall through to the raw text
	if got := DisplayValue(date, "not-a-date"); got != "not-a-date" {
		t.Fatalf("bad date: %q", got)
	}

	text := template.MustNewFieldSpec(template.FieldTypeText)
	if got := DisplayValue(text, "plain"); got != "plain" {
		t.Fatalf("text: %q", got)
	}
}

func TestComplianceLine(t *testing.T) {
	general := template.MustNew("plain")
	if got := complianceLine(general); got != "General" {
		t.Fatalf("no flags: %q", got)
	}

	both := template.MustNew("both",
		template.WithCompliance("hipaa"),
		template.WithCompliance("gdpr"),
	)
	if got := complianceLine(both); got != "HIPAA, GDPR compliant" {
		t.Fatalf("both flags: %q", got)
	}
}
