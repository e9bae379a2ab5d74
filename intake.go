// Package intake is the entry point for embedding the tabbed intake
// questionnaire: it loads a definition, builds the form controller and exposes
// the bundled templates and assets.
package intake

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/openapi"
	"github.com/goliatone/go-intake/pkg/questionnaire"
	"github.com/goliatone/go-intake/pkg/renderers/html"
)

// Controller aliases form.Controller for callers importing only the root
// package.
type Controller = form.Controller

// Option aliases form.Option.
type Option = form.Option

// Definition aliases questionnaire.Definition.
type Definition = questionnaire.Definition

// Re-exported controller options.
var (
	WithLogger      = form.WithLogger
	WithSurface     = form.WithSurface
	WithSubmitDelay = form.WithSubmitDelay
	WithOnSubmit    = form.WithOnSubmit
)

// New builds a controller for def.
func New(def Definition, options ...Option) (*Controller, error) {
	return form.New(def, options...)
}

// NewDefault builds a controller for the bundled obstetric intake.
func NewDefault(options ...Option) (*Controller, error) {
	def, err := questionnaire.Default()
	if err != nil {
		return nil, err
	}
	return form.New(def, options...)
}

// WithOpenAPIRules loads the OpenAPI document at path and returns an option
// replacing the validation rules with those of the named component schema.
func WithOpenAPIRules(ctx context.Context, path, schema string) (Option, error) {
	doc, err := openapi.NewLoader().Load(ctx, openapi.SourceFromFile(path))
	if err != nil {
		return nil, err
	}
	rules, err := openapi.Rules(ctx, doc, schema)
	if err != nil {
		return nil, err
	}
	return form.WithRules(rules...), nil
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// EmbeddedQuestionnaires exposes the bundled questionnaire definitions.
func EmbeddedQuestionnaires() fs.FS {
	return questionnaire.EmbeddedFS()
}

// AssetsFS exposes the stylesheet served alongside linked HTML pages.
//
// Typical mount:
//
//	mux.Handle("/assets/intake/",
//	  http.StripPrefix("/assets/intake/",
//	    http.FileServerFS(intake.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
