// Package html renders a form snapshot as a self-contained HTML page using
// pongo2 templates. Help and description text pass through a bluemonday
// policy; colours come from a go-theme manifest.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-intake/pkg/render"
)

const formTemplate = "templates/form.html"

// PageTemplateKey is the theme partial naming the page template. A theme may
// point it at another file inside the template bundle.
const PageTemplateKey = "intake.page"

// Labels rendered into the page.
const (
	// ErrorsHeading introduces the validation error list.
	ErrorsHeading = "Please correct the following errors:"
	// SuccessLabel prefixes the success message.
	SuccessLabel = "Success!"
	// SubmitLabel is the idle submit button text.
	SubmitLabel = "CALCULATE"
	// BusyLabel replaces SubmitLabel while a submission is pending.
	BusyLabel = "CALCULATING..."
)

// Option customises the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	theme      *theme.RendererConfig
	selector   theme.ThemeSelector
	themeName  string
	variant    string
	inlineCSS  bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTheme sets the resolved theme configuration.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		if themeCfg != nil {
			cfg.theme = themeCfg
		}
	}
}

// WithThemeSelector resolves the theme through a go-theme selector when the
// renderer is built. It takes precedence over WithTheme.
func WithThemeSelector(selector theme.ThemeSelector, themeName, variant string) Option {
	return func(cfg *config) {
		if selector == nil {
			return
		}
		cfg.selector = selector
		cfg.themeName = themeName
		cfg.variant = variant
	}
}

// WithInlineStylesheet embeds the bundled stylesheet in the page instead of
// linking the theme's stylesheet asset.
func WithInlineStylesheet(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineCSS = enabled
	}
}

// Renderer implements render.Renderer for HTML pages.
type Renderer struct {
	template *pongo2.Template
	theme    *theme.RendererConfig
	inline   bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer. Without a theme option the bundled
// manifest is used.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineCSS: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	switch {
	case cfg.selector != nil:
		themeCfg, err := SelectTheme(cfg.selector, cfg.themeName, cfg.variant)
		if err != nil {
			return nil, err
		}
		cfg.theme = themeCfg
	case cfg.theme == nil:
		themeCfg, err := ThemeConfig(DefaultManifest(), "")
		if err != nil {
			return nil, err
		}
		cfg.theme = themeCfg
	}

	page := formTemplate
	if name := cfg.theme.Partials[PageTemplateKey]; name != "" {
		page = name
	}

	set := pongo2.NewSet("intake-html", pongo2.NewFSLoader(cfg.templateFS))
	tmpl, err := set.FromFile(page)
	if err != nil {
		return nil, fmt.Errorf("html renderer: load template %q: %w", page, err)
	}

	return &Renderer{template: tmpl, theme: cfg.theme, inline: cfg.inlineCSS}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the page for snap.
func (r *Renderer) Render(ctx context.Context, snap render.Snapshot) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil || r.template == nil {
		return nil, fmt.Errorf("html renderer: template is nil")
	}

	var buf bytes.Buffer
	if err := r.template.ExecuteWriter(pongo2.Context{"form": r.view(snap)}, &buf); err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return buf.Bytes(), nil
}

type pageView struct {
	Title         string
	Subtitle      string
	ThemeName     string
	ThemeVariant  string
	StyleVars     string
	Stylesheet    string
	StylesheetURL string
	Sections      []sectionView
	CanGoPrevious bool
	CanGoNext     bool
	Errors        []string
	ErrorsHeading string
	Success       string
	SuccessLabel  string
	Submitting    bool
	SubmitLabel   string
}

type sectionView struct {
	ID          string
	TabID       string
	PanelID     string
	Title       string
	Description string
	Active      bool
	Fields      []fieldView
}

type fieldView struct {
	Name     string
	Label    string
	Kind     string
	Group    string
	Unit     string
	Help     string
	Value    string
	Options  []optionView
	Hidden   bool
	Feedback string
	IsYes    bool
}

type optionView struct {
	Value    string
	Selected bool
}

func (r *Renderer) view(snap render.Snapshot) pageView {
	page := pageView{
		Title:         snap.Title,
		Subtitle:      snap.Subtitle,
		CanGoPrevious: snap.CanGoPrevious,
		CanGoNext:     snap.CanGoNext,
		Errors:        render.NormalizeMessages(snap.Errors),
		ErrorsHeading: ErrorsHeading,
		Success:       snap.Success,
		SuccessLabel:  SuccessLabel,
		Submitting:    snap.Submitting,
		SubmitLabel:   SubmitLabel,
	}
	if snap.Submitting {
		page.SubmitLabel = BusyLabel
	}
	if r.theme != nil {
		page.ThemeName = r.theme.Theme
		page.ThemeVariant = r.theme.Variant
		page.StyleVars = cssVarsStyle(r.theme.CSSVars)
		if r.theme.AssetURL != nil {
			page.StylesheetURL = r.theme.AssetURL("stylesheet")
		}
	}
	if r.inline {
		page.Stylesheet = defaultStylesheet()
		page.StylesheetURL = ""
	}

	for _, section := range snap.Sections {
		sv := sectionView{
			ID:          section.ID,
			TabID:       section.ID + "Tab",
			PanelID:     section.ID + "Section",
			Title:       section.Title,
			Description: sanitizeHelp(section.Description),
			Active:      section.Active,
		}
		for _, field := range section.Fields {
			fv := fieldView{
				Name:     field.Name,
				Label:    field.Label,
				Kind:     field.Kind,
				Group:    field.Group,
				Unit:     field.Unit,
				Help:     sanitizeHelp(field.Help),
				Value:    field.Value,
				Hidden:   field.Hidden,
				Feedback: field.Feedback,
				IsYes:    field.Value == "yes",
			}
			for _, opt := range field.Options {
				fv.Options = append(fv.Options, optionView{Value: opt, Selected: opt == field.Value})
			}
			sv.Fields = append(sv.Fields, fv)
		}
		page.Sections = append(page.Sections, sv)
	}
	return page
}
