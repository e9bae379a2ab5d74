// Package config loads intake-cli settings using Viper.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/questionnaire"
)

// EnvPrefix is prepended to every environment override, e.g. INTAKE_LOG_LEVEL.
const EnvPrefix = "INTAKE"

// DefaultSchema is the component schema read from OpenAPI documents.
const DefaultSchema = "IntakeAssessment"

// Config holds all configuration values for intake-cli.
type Config struct {
	Definition    string        `mapstructure:"definition" yaml:"definition"`
	Questionnaire string        `mapstructure:"questionnaire" yaml:"questionnaire"`
	OpenAPI       string        `mapstructure:"openapi" yaml:"openapi"`
	Schema        string        `mapstructure:"schema" yaml:"schema"`
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level"`
	SubmitDelay   time.Duration `mapstructure:"submit_delay" yaml:"submit_delay"`
	ThemeVariant  string        `mapstructure:"theme_variant" yaml:"theme_variant"`
	Output        string        `mapstructure:"output" yaml:"output"`
}

var keys = []string{
	"definition",
	"questionnaire",
	"openapi",
	"schema",
	"log_level",
	"submit_delay",
	"theme_variant",
	"output",
}

// Load resolves configuration with precedence ENV vars > config file >
// defaults. path names the config file; when empty ./intake.yml is read if it
// exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("definition", "")
	v.SetDefault("questionnaire", questionnaire.DefaultID)
	v.SetDefault("openapi", "")
	v.SetDefault("schema", DefaultSchema)
	v.SetDefault("log_level", "info")
	v.SetDefault("submit_delay", form.DefaultSubmitDelay)
	v.SetDefault("theme_variant", "")
	v.SetDefault("output", "json")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if path == "" && fileExists(ProjectPath()) {
		path = ProjectPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.SubmitDelay < 0 {
		return nil, fmt.Errorf("submit_delay must not be negative, got %s", cfg.SubmitDelay)
	}
	return &cfg, nil
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "intake.yml"
}

// Logger builds a production zap logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
