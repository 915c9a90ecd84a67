package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formval/internal/config"
	"github.com/goliatone/go-formval/pkg/template"
	"github.com/goliatone/go-formval/pkg/validation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

type app struct {
	configPath string
	logFile    string
	verbose    bool

	logger    *slog.Logger
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "formval-cli",
		Short:         "Validate form records against templates and render documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logCloser != nil {
				a.logCloser.Close()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config/mapping_rules.json", "template configuration file (JSON or YAML)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "append logs to this file instead of stderr")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newInitCmd(a),
		newListCmd(a),
		newValidateCmd(a),
		newStatsCmd(a),
		newRenderCmd(a),
		newDemoCmd(a),
		newInteractiveCmd(a),
	)
	return root
}

func (a *app) setupLogging() error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}

	out := io.Writer(os.Stderr)
	if a.logFile != "" {
		file, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logCloser = file
		out = file
	}

	a.logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return nil
}

// registry loads the configured template set, falling back to the built-in
// defaults when the config file is absent or broken.
func (a *app) registry() (*template.Registry, config.Settings) {
	result, err := config.LoadOrDefault(a.configPath, config.WithLogger(a.logger))
	if err != nil {
		a.logger.Debug("using built-in templates", slog.String("reason", err.Error()))
	}
	return result.Registry, result.Settings
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the built-in default template configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.configPath); err == nil {
				return fmt.Errorf("refusing to overwrite existing config %s", a.configPath)
			}
			if err := config.WriteDefault(a.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "default template configuration written to %s\n", a.configPath)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _ := a.registry()
			printTemplateList(cmd.OutOrStdout(), registry)
			return nil
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	var templateName, dataPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a record file against a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _ := a.registry()

			record, err := readRecord(dataPath)
			if err != nil {
				return err
			}

			validator := validation.New(registry)
			result, err := validator.Validate(record, templateName)
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), templateName, result)
			if !result.Valid() {
				return fmt.Errorf("record failed validation with %d violation(s)", len(result.Violations))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "template name (required)")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "record JSON file (required)")
	cmd.MarkFlagRequired("template")
	cmd.MarkFlagRequired("data")
	return cmd
}

func readRecord(path string) (validation.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	var record validation.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", path, err)
	}
	return record, nil
}

func readRecordBatch(path string) ([]validation.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	var records []validation.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse records %s (expected a JSON array): %w", path, err)
	}
	return records, nil
}
