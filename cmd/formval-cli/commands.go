package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	formval "github.com/goliatone/go-formval"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/stats"
	"github.com/goliatone/go-formval/pkg/validation"
)

func newStatsCmd(a *app) *cobra.Command {
	var templateName, dataPath, outputPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a batch of records against a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _ := a.registry()

			records, err := readRecordBatch(dataPath)
			if err != nil {
				return err
			}

			summary, err := stats.New(registry).Summarize(records, templateName)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), summary)

			if outputPath != "" {
				raw, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return fmt.Errorf("encode summary: %w", err)
				}
				if err := os.WriteFile(outputPath, raw, 0o644); err != nil {
					return fmt.Errorf("write summary: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nsummary written to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "template name (required)")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "JSON array of records (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the summary JSON to this file")
	cmd.MarkFlagRequired("template")
	cmd.MarkFlagRequired("data")
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var templateName, dataPath, outputPath, rendererName string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a validated record as a formatted document",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _ := a.registry()

			record, err := readRecord(dataPath)
			if err != nil {
				return err
			}

			result, err := validation.New(registry).Validate(record, templateName)
			if err != nil {
				return err
			}
			if !result.Valid() {
				printResult(cmd.OutOrStdout(), templateName, result)
				return fmt.Errorf("refusing to render an invalid record")
			}

			tpl, err := registry.Get(templateName)
			if err != nil {
				return err
			}

			output, err := formval.RenderDocument(cmd.Context(), record, tpl, rendererName, render.Options{})
			if err != nil {
				return err
			}

			if outputPath == "" {
				cmd.OutOrStdout().Write(output)
				return nil
			}
			if err := os.WriteFile(outputPath, output, 0o644); err != nil {
				return fmt.Errorf("write document: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "document written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "template name (required)")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "record JSON file (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&rendererName, "renderer", "r", "htmldoc", "renderer to use (htmldoc, textdoc)")
	cmd.MarkFlagRequired("template")
	cmd.MarkFlagRequired("data")
	return cmd
}

func newDemoCmd(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted walkthrough over every template",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _ := a.registry()
			out := cmd.OutOrStdout()

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			printTemplateList(out, registry)
			validator := validation.New(registry)
			aggregator := stats.New(registry)
			timestamp := time.Now().Format("20060102_150405")

			for _, name := range registry.List() {
				tpl, err := registry.Get(name)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "\n%s\n", headingStyle.Render("Template: "+name))

				sample := formval.SampleRecord(tpl)
				result, err := validator.Validate(sample, name)
				if err != nil {
					return err
				}
				printResult(out, name, result)

				if result.Valid() {
					document, err := formval.RenderDocument(cmd.Context(), sample, tpl, "htmldoc", render.Options{})
					if err != nil {
						return err
					}
					path := filepath.Join(outDir, fmt.Sprintf("%s_%s.html", name, timestamp))
					if err := os.WriteFile(path, document, 0o644); err != nil {
						return fmt.Errorf("write document: %w", err)
					}
					fmt.Fprintf(out, "document written to %s\n", path)
				}

				// A deliberately broken record, so the walkthrough shows the
				// complete violation list a failing payload produces.
				broken := validation.Record{}
				for key, value := range sample {
					broken[key] = value
				}
				for _, field := range tpl.Fields() {
					if field.Spec.Required {
						delete(broken, field.Name)
						break
					}
				}
				broken["unexpected_field"] = "ignored by design"

				brokenResult, err := validator.Validate(broken, name)
				if err != nil {
					return err
				}
				printResult(out, name, brokenResult)

				summary, err := aggregator.Summarize([]validation.Record{sample, broken}, name)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				printSummary(out, summary)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "data/output", "directory for generated documents")
	return cmd
}
