package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-intake/internal/config"
	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/openapi"
	"github.com/goliatone/go-intake/pkg/questionnaire"
)

// loadDefinition resolves the questionnaire named by the config.
func loadDefinition(c *config.Config) (questionnaire.Definition, error) {
	var (
		store *questionnaire.Store
		err   error
	)
	switch {
	case c.Definition == "":
		store, err = questionnaire.LoadFS(questionnaire.EmbeddedFS())
	default:
		info, statErr := os.Stat(c.Definition)
		if statErr != nil {
			return questionnaire.Definition{}, statErr
		}
		if info.IsDir() {
			store, err = questionnaire.LoadFS(os.DirFS(c.Definition))
		} else {
			data, readErr := os.ReadFile(c.Definition)
			if readErr != nil {
				return questionnaire.Definition{}, readErr
			}
			store, err = questionnaire.Parse(data, c.Definition)
		}
	}
	if err != nil {
		return questionnaire.Definition{}, err
	}

	def, ok := store.Definition(c.Questionnaire)
	if !ok {
		return questionnaire.Definition{}, fmt.Errorf("questionnaire %q not found (available: %v)", c.Questionnaire, store.IDs())
	}
	return def, nil
}

// formOptions returns controller options derived from the config, including
// OpenAPI rules when a document is configured.
func formOptions(ctx context.Context, c *config.Config, log *zap.Logger) ([]form.Option, error) {
	opts := []form.Option{
		form.WithLogger(log),
		form.WithSubmitDelay(c.SubmitDelay),
	}
	if c.OpenAPI == "" {
		return opts, nil
	}

	doc, err := openapi.NewLoader().Load(ctx, openapi.SourceFromFile(c.OpenAPI))
	if err != nil {
		return nil, err
	}
	rules, err := openapi.Rules(ctx, doc, c.Schema)
	if err != nil {
		return nil, err
	}
	log.Debug("validation rules imported",
		zap.String("openapi", c.OpenAPI),
		zap.String("schema", c.Schema),
		zap.Int("rules", len(rules)),
	)
	return append(opts, form.WithRules(rules...)), nil
}

func newController(ctx context.Context) (*form.Controller, error) {
	def, err := loadDefinition(cfg)
	if err != nil {
		return nil, err
	}
	opts, err := formOptions(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return form.New(def, opts...)
}
