package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	formval "github.com/goliatone/go-formval"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/template"
	"github.com/goliatone/go-formval/pkg/validation"
)

const (
	actionList   = "List templates"
	actionSample = "Validate sample data"
	actionRecord = "Enter and validate a record"
	actionRender = "Render a sample document"
	actionQuit   = "Quit"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Explore templates and validation from an interactive prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _ := a.registry()
			return runInteractive(cmd, registry)
		},
	}
}

func runInteractive(cmd *cobra.Command, registry *template.Registry) error {
	out := cmd.OutOrStdout()

	for {
		var choice string
		prompt := &survey.Select{
			Message: "Choose an action",
			Options: []string{actionList, actionSample, actionRecord, actionRender, actionQuit},
		}
		if err := survey.AskOne(prompt, &choice); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}

		var err error
		switch choice {
		case actionList:
			printTemplateList(out, registry)
		case actionSample:
			err = interactiveSample(cmd, registry)
		case actionRecord:
			err = interactiveRecord(cmd, registry)
		case actionRender:
			err = interactiveRender(cmd, registry)
		case actionQuit:
			return nil
		}
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			fmt.Fprintln(out, errorStyle.Render("error: ")+err.Error())
		}
	}
}

func pickTemplate(registry *template.Registry) (template.Template, error) {
	names := registry.List()
	if len(names) == 0 {
		return template.Template{}, fmt.Errorf("no templates registered")
	}

	var name string
	prompt := &survey.Select{Message: "Template", Options: names}
	if err := survey.AskOne(prompt, &name); err != nil {
		return template.Template{}, err
	}
	return registry.Get(name)
}

func interactiveSample(cmd *cobra.Command, registry *template.Registry) error {
	tpl, err := pickTemplate(registry)
	if err != nil {
		return err
	}

	sample := formval.SampleRecord(tpl)
	result := validation.ValidateAgainst(sample, tpl)
	printResult(cmd.OutOrStdout(), tpl.Name(), result)
	return nil
}

func interactiveRecord(cmd *cobra.Command, registry *template.Registry) error {
	tpl, err := pickTemplate(registry)
	if err != nil {
		return err
	}

	record := validation.Record{}
	for _, field := range tpl.Fields() {
		value, skip, err := promptField(field)
		if err != nil {
			return err
		}
		if !skip {
			record[field.Name] = value
		}
	}

	result := validation.ValidateAgainst(record, tpl)
	printResult(cmd.OutOrStdout(), tpl.Name(), result)
	return nil
}

// promptField asks for one field's value. Per-field rules run as survey
// validators so mistakes are caught at entry; optional fields left blank are
// skipped rather than stored as empty strings.
func promptField(field template.Field) (any, bool, error) {
	message := field.Label()

	switch field.Spec.Type {
	case template.FieldTypeBoolean:
		var answer bool
		prompt := &survey.Confirm{Message: message}
		if err := survey.AskOne(prompt, &answer); err != nil {
			return nil, false, err
		}
		return answer, false, nil

	case template.FieldTypeSelect:
		var answer string
		prompt := &survey.Select{Message: message, Options: field.Spec.Options}
		if err := survey.AskOne(prompt, &answer); err != nil {
			return nil, false, err
		}
		return answer, false, nil

	default:
		help := ""
		if field.Spec.Example != nil {
			help = fmt.Sprintf("example: %v", field.Spec.Example)
		}

		var answer string
		prompt := &survey.Input{Message: message, Help: help}
		err := survey.AskOne(prompt, &answer, survey.WithValidator(fieldValidator(field)))
		if err != nil {
			return nil, false, err
		}
		if strings.TrimSpace(answer) == "" {
			return nil, true, nil
		}
		return answer, false, nil
	}
}

func fieldValidator(field template.Field) survey.Validator {
	return func(ans any) error {
		value, _ := ans.(string)
		if strings.TrimSpace(value) == "" {
			if field.Spec.Required {
				return fmt.Errorf("%s is required", field.Label())
			}
			return nil
		}
		if violations := validation.CheckField(field, value); len(violations) > 0 {
			return errors.New(violations[0].Message)
		}
		return nil
	}
}

func interactiveRender(cmd *cobra.Command, registry *template.Registry) error {
	tpl, err := pickTemplate(registry)
	if err != nil {
		return err
	}

	var rendererName string
	if err := survey.AskOne(&survey.Select{
		Message: "Renderer",
		Options: []string{"textdoc", "htmldoc"},
	}, &rendererName); err != nil {
		return err
	}

	sample := formval.SampleRecord(tpl)
	result := validation.ValidateAgainst(sample, tpl)
	if !result.Valid() {
		printResult(cmd.OutOrStdout(), tpl.Name(), result)
		return fmt.Errorf("sample data for %s does not validate; fix the template examples", tpl.Name())
	}

	document, err := formval.RenderDocument(cmd.Context(), sample, tpl, rendererName, render.Options{})
	if err != nil {
		return err
	}

	if rendererName == "textdoc" {
		cmd.OutOrStdout().Write(document)
		return nil
	}

	var path string
	if err := survey.AskOne(&survey.Input{
		Message: "Output file",
		Default: tpl.Name() + ".html",
	}, &path); err != nil {
		return err
	}
	if err := os.WriteFile(path, document, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "document written to %s\n", path)
	return nil
}
