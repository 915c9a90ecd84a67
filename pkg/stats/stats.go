// Package stats aggregates validation outcomes and fill metrics over batches
// of records. It reuses the single-record validator so batch numbers can
// never diverge from per-record semantics.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-formval/pkg/template"
	"github.com/goliatone/go-formval/pkg/validation"
)

// FieldStats aggregates one template field over a batch.
type FieldStats struct {
	Name         string             `json:"name"`
	Type         template.FieldType `json:"type"`
	Filled       int                `json:"filled"`
	Empty        int                `json:"empty"`
	FillRate     float64            `json:"fill_rate"`
	UniqueValues []string           `json:"unique_values,omitempty"`
	UniqueCount  int                `json:"unique_count"`
}

// Summary is the per-template aggregate built once per batch call.
type Summary struct {
	TemplateName   string         `json:"template_name"`
	GeneratedAt    time.Time      `json:"generated_at"`
	TotalRecords   int            `json:"total_records"`
	ValidRecords   int            `json:"valid_records"`
	InvalidRecords int            `json:"invalid_records"`
	Fields         []FieldStats   `json:"field_statistics"`
	CommonErrors   map[string]int `json:"common_errors,omitempty"`
}

// Aggregator runs the record validator over batches.
type Aggregator struct {
	registry *template.Registry
}

// New constructs an Aggregator backed by the supplied registry.
func New(registry *template.Registry) *Aggregator {
	return &Aggregator{registry: registry}
}

// Summarize tallies fill rates, value uniqueness, and violation message
// frequency for a batch of records against the named template. It returns
// template.NotFoundError when the name is not registered.
func (a *Aggregator) Summarize(records []validation.Record, templateName string) (Summary, error) {
	if a == nil || a.registry == nil {
		return Summary{}, fmt.Errorf("stats: aggregator requires a registry")
	}
	tpl, err := a.registry.Get(templateName)
	if err != nil {
		return Summary{}, err
	}
	return SummarizeAgainst(records, tpl), nil
}

// SummarizeAgainst is the pure batch computation over a resolved template.
func SummarizeAgainst(records []validation.Record, tpl template.Template) Summary {
	summary := Summary{
		TemplateName: tpl.Name(),
		GeneratedAt:  time.Now().UTC(),
		TotalRecords: len(records),
		CommonErrors: make(map[string]int),
	}

	for _, field := range tpl.Fields() {
		fieldStats := FieldStats{
			Name: field.Name,
			Type: field.Spec.Type,
		}
		unique := make(map[string]struct{})

		for _, record := range records {
			value, ok := record[field.Name]
			text := validation.Stringify(value)
			if ok && strings.TrimSpace(text) != "" {
				fieldStats.Filled++
				unique[text] = struct{}{}
			} else {
				fieldStats.Empty++
			}
		}

		if summary.TotalRecords > 0 {
			fieldStats.FillRate = float64(fieldStats.Filled) / float64(summary.TotalRecords) * 100
		}
		fieldStats.UniqueCount = len(unique)
		fieldStats.UniqueValues = sortedKeys(unique)

		summary.Fields = append(summary.Fields, fieldStats)
	}

	for _, record := range records {
		result := validation.ValidateAgainst(record, tpl)
		if result.Valid() {
			summary.ValidRecords++
			continue
		}
		summary.InvalidRecords++
		// Messages are free text: identical wording aggregates, distinct
		// wording does not.
		for _, message := range result.Messages() {
			summary.CommonErrors[message]++
		}
	}

	if len(summary.CommonErrors) == 0 {
		summary.CommonErrors = nil
	}
	return summary
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
