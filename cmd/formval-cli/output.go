package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formval/pkg/stats"
	"github.com/goliatone/go-formval/pkg/template"
	"github.com/goliatone/go-formval/pkg/validation"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func printTemplateList(w io.Writer, registry *template.Registry) {
	names := registry.List()
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Available templates (%d)", len(names))))

	for _, name := range names {
		tpl, err := registry.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "\n  %s\n", lipgloss.NewStyle().Bold(true).Render(name))
		if desc := tpl.Description(); desc != "" {
			fmt.Fprintf(w, "    %s\n", desc)
		}
		if category := tpl.Category(); category != "" {
			fmt.Fprintf(w, "    category: %s\n", category)
		}
		fmt.Fprintf(w, "    fields: %d (%d required)\n", tpl.Len(), tpl.RequiredCount())
		if compliance := tpl.Compliance(); len(compliance) > 0 {
			fmt.Fprintf(w, "    compliance: %s\n", strings.ToUpper(strings.Join(compliance, ", ")))
		}
	}
}

func printResult(w io.Writer, templateName string, result validation.Result) {
	if result.Valid() {
		fmt.Fprintf(w, "%s record conforms to %s\n", okStyle.Render("PASS"), templateName)
		return
	}

	fmt.Fprintf(w, "%s record fails %s:\n", errorStyle.Render("FAIL"), templateName)
	for _, violation := range result.Violations {
		fmt.Fprintf(w, "  - %s %s\n", violation.Message, dimStyle.Render("("+string(violation.Rule)+")"))
	}
}

func printSummary(w io.Writer, summary stats.Summary) {
	fmt.Fprintln(w, headingStyle.Render("Batch summary: "+summary.TemplateName))
	fmt.Fprintf(w, "  records: %d total, %s valid, %s invalid\n",
		summary.TotalRecords,
		okStyle.Render(fmt.Sprintf("%d", summary.ValidRecords)),
		errorStyle.Render(fmt.Sprintf("%d", summary.InvalidRecords)),
	)

	fmt.Fprintln(w, "\n  field fill rates:")
	for _, field := range summary.Fields {
		fmt.Fprintf(w, "    %-20s %6.1f%%  (%d filled, %d empty, %d unique)\n",
			field.Name, field.FillRate, field.Filled, field.Empty, field.UniqueCount)
	}

	if len(summary.CommonErrors) > 0 {
		fmt.Fprintln(w, "\n  common errors:")
		messages := make([]string, 0, len(summary.CommonErrors))
		for message := range summary.CommonErrors {
			messages = append(messages, message)
		}
		sort.Slice(messages, func(i, j int) bool {
			if summary.CommonErrors[messages[i]] != summary.CommonErrors[messages[j]] {
				return summary.CommonErrors[messages[i]] > summary.CommonErrors[messages[j]]
			}
			return messages[i] < messages[j]
		})
		for _, message := range messages {
			fmt.Fprintf(w, "    %3dx %s\n", summary.CommonErrors[message], message)
		}
	}
}
