package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-intake/internal/config"
)

// Version set via ldflags during build
var version = "dev"

var (
	cfg    *config.Config
	logger = zap.NewNop()

	rootFlags struct {
		config        string
		definition    string
		questionnaire string
		openapi       string
		schema        string
		logLevel      string
	}
)

var rootCmd = &cobra.Command{
	Use:     "intake-cli",
	Short:   "Render, validate and fill the obstetric intake questionnaire",
	Version: version,
	Long: `intake-cli drives a tabbed clinical intake questionnaire.

The bundled obstetric intake is used unless --definition points at a
questionnaire file or directory. Validation rules may be replaced by the
component schema of an OpenAPI document (--openapi, --schema).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(rootFlags.config)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, loaded)
		cfg = loaded

		logger, err = cfg.Logger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.config, "config", "", "config file (default ./intake.yml when present)")
	flags.StringVar(&rootFlags.definition, "definition", "", "questionnaire file or directory (default: bundled)")
	flags.StringVarP(&rootFlags.questionnaire, "questionnaire", "q", "", "questionnaire id")
	flags.StringVar(&rootFlags.openapi, "openapi", "", "OpenAPI document supplying validation rules")
	flags.StringVar(&rootFlags.schema, "schema", "", "component schema name inside --openapi")
	flags.StringVar(&rootFlags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runCmd)
}

// applyFlagOverrides gives explicitly set flags precedence over env and file.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("definition") {
		c.Definition = rootFlags.definition
	}
	if flags.Changed("questionnaire") {
		c.Questionnaire = rootFlags.questionnaire
	}
	if flags.Changed("openapi") {
		c.OpenAPI = rootFlags.openapi
	}
	if flags.Changed("schema") {
		c.Schema = rootFlags.schema
	}
	if flags.Changed("log-level") {
		c.LogLevel = rootFlags.logLevel
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
