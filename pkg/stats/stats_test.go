package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/template"
	"github.com/goliatone/go-formval/pkg/validation"
)

func surveyTemplate(t *testing.T) template.Template {
	t.Helper()
	tpl, err := template.New("survey",
		template.WithField("name", template.MustNewFieldSpec(template.FieldTypeText, template.WithRequired())),
		template.WithField("department", template.MustNewFieldSpec(template.FieldTypeSelect,
			template.WithOptions("IT", "HR"))),
		template.WithField("score", template.MustNewFieldSpec(template.FieldTypeNumber,
			template.WithMinValue(0), template.WithMaxValue(100))),
	)
	if err != nil {
		t.Fatalf("build template: %v", err)
	}
	return tpl
}

func TestSummarizeAgainst_Counts(t *testing.T) {
	tpl := surveyTemplate(t)
	records := []validation.Record{
		{"name": "Alice", "department": "IT", "score": 90},
		{"name": "Bob", "department": "HR"},
		{"department": "Finance", "score": 101}, // missing name, bad enum, out of range
	}

	summary := SummarizeAgainst(records, tpl)

	if summary.TemplateName != "survey" {
		t.Fatalf("template name: %q", summary.TemplateName)
	}
	if summary.TotalRecords != 3 || summary.ValidRecords != 2 || summary.InvalidRecords != 1 {
		t.Fatalf("counts: total=%d valid=%d invalid=%d",
			summary.TotalRecords, summary.ValidRecords, summary.InvalidRecords)
	}
	if summary.GeneratedAt.IsZero() {
		t.Fatalf("expected a generation timestamp")
	}
}

func TestSummarizeAgainst_FieldStats(t *testing.T) {
	tpl := surveyTemplate(t)
	records := []validation.Record{
		{"name": "Alice", "department": "IT", "score": 90},
		{"name": "Bob", "department": "IT"},
		{"name": "Alice", "department": "HR", "score": "  "},
	}

	summary := SummarizeAgainst(records, tpl)
	if len(summary.Fields) != 3 {
		t.Fatalf("expected stats for every template field, got %d", len(summary.Fields))
	}

	byName := map[string]FieldStats{}
	for _, fs := range summary.Fields {
		byName[fs.Name] = fs
	}

	name := byName["name"]
	if name.Filled != 3 || name.Empty != 0 || name.UniqueCount != 2 {
		t.Fatalf("name stats: %+v", name)
	}
	if diff := cmp.Diff([]string{"Alice", "Bob"}, name.UniqueValues); diff != "" {
		t.Fatalf("unique values mismatch (-want +got):\n%s", diff)
	}

	score := byName["score"]
	// blank values do not count as filled
	if score.Filled != 1 || score.Empty != 2 {
		t.Fatalf("score stats: %+v", score)
	}
	if math.Abs(score.FillRate-100.0/3.0) > 1e-9 {
		t.Fatalf("score fill rate: %v", score.FillRate)
	}
}

func TestSummarizeAgainst_EmptyBatch(t *testing.T) {
	tpl := surveyTemplate(t)

	summary := SummarizeAgainst(nil, tpl)
	if summary.TotalRecords != 0 || summary.ValidRecords != 0 || summary.InvalidRecords != 0 {
		t.Fatalf("empty batch counts: %+v", summary)
	}
	for _, fs := range summary.Fields {
		if fs.FillRate != 0 {
			t.Fatalf("fill rate over zero records must be zero, got %v for %s", fs.FillRate, fs.Name)
		}
	}
	if summary.CommonErrors != nil {
		t.Fatalf("no records means no errors, got %v", summary.CommonErrors)
	}
}

func TestSummarizeAgainst_CommonErrorsTally(t *testing.T) {
	tpl := surveyTemplate(t)
	records := []validation.Record{
		{"department": "IT"},
		{"department": "HR"},
		{"name": "Cara", "score": 200},
	}

	summary := SummarizeAgainst(records, tpl)
	if summary.InvalidRecords != 3 {
		t.Fatalf("expected all three records invalid, got %d", summary.InvalidRecords)
	}
	if got := summary.CommonErrors["missing required field: name"]; got != 2 {
		t.Fatalf("expected the missing-name message twice, got %d (%v)", got, summary.CommonErrors)
	}
	if got := summary.CommonErrors["score exceeds the maximum value 100"]; got != 1 {
		t.Fatalf("expected one range message, got %d (%v)", got, summary.CommonErrors)
	}
}

func TestAggregator_UnknownTemplate(t *testing.T) {
	aggregator := New(template.NewRegistry())

	_, err := aggregator.Summarize(nil, "missing")
	var notFound template.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestAggregator_Summarize(t *testing.T) {
	registry := template.NewRegistry()
	registry.MustRegister(surveyTemplate(t))
	aggregator := New(registry)

	summary, err := aggregator.Summarize([]validation.Record{
		{"name": "Alice"},
	}, "survey")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.ValidRecords != 1 {
		t.Fatalf("expected one valid record, got %+v", summary)
	}
}
