package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var validateFlags struct {
	valuesFile string
	sets       []string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate field values against the questionnaire rules",
	Long: `Reads values from --values (a JSON or YAML map) and --set flags, then
prints every validation message in the order the form would show them.
Exits non-zero when any rule fails.`,
	RunE: runValidate,
}

func init() {
	flags := validateCmd.Flags()
	flags.StringVarP(&validateFlags.valuesFile, "values", "f", "", "JSON or YAML file of field values")
	flags.StringArrayVar(&validateFlags.sets, "set", nil, "field value as name=value, repeatable")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctrl, err := newController(cmd.Context())
	if err != nil {
		return err
	}

	values := map[string]string{}
	if validateFlags.valuesFile != "" {
		data, err := os.ReadFile(validateFlags.valuesFile)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("parse %s: %w", validateFlags.valuesFile, err)
		}
	}
	overrides, err := parseAssignments(validateFlags.sets)
	if err != nil {
		return err
	}
	for name, value := range overrides {
		values[name] = value
	}
	applyValues(ctrl, values)

	messages := ctrl.Validate()
	out := cmd.OutOrStdout()
	if len(messages) == 0 {
		fmt.Fprintln(out, "All values are valid.")
		return nil
	}
	fmt.Fprintln(out, "Please correct the following errors:")
	for _, msg := range messages {
		fmt.Fprintf(out, "  - %s\n", msg)
	}
	return fmt.Errorf("%d validation error(s)", len(messages))
}
