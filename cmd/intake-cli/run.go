package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-intake/pkg/renderers/tui"
)

var runFlags struct {
	format string
	output string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fill in the questionnaire interactively",
	Long: `Walks the questionnaire section by section in the terminal. Choosing
Calculate validates every field; once the simulated calculation completes the
submitted values are printed in --format.`,
	RunE: runInteractive,
}

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&runFlags.format, "format", "", "output format (json, form, pretty; default from config)")
	flags.StringVarP(&runFlags.output, "output", "o", "", "output file (stdout if empty)")
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	def, err := loadDefinition(cfg)
	if err != nil {
		return err
	}
	opts, err := formOptions(ctx, cfg, logger)
	if err != nil {
		return err
	}

	format := cfg.Output
	if runFlags.format != "" {
		format = runFlags.format
	}
	session, err := tui.NewSession(def,
		tui.WithLogger(logger),
		tui.WithOutputFormat(tui.OutputFormat(format)),
		tui.WithFormOptions(opts...),
	)
	if err != nil {
		return err
	}

	out, err := session.Run(ctx)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
		return nil
	}
	if err != nil {
		return err
	}

	if runFlags.output == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}
	return os.WriteFile(runFlags.output, out, 0o644)
}
