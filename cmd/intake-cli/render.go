package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/render"
	"github.com/goliatone/go-intake/pkg/renderers/html"
	"github.com/goliatone/go-intake/pkg/renderers/tui"
)

var renderFlags struct {
	renderer  string
	output    string
	section   string
	variant   string
	linkCSS   bool
	templates string
	sets      []string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the questionnaire as HTML or terminal text",
	Long: `Builds the form state, applies any --set values, activates --section and
prints the result through the chosen renderer.

Example:
  intake-cli render --set pregnancy_loss=yes --section history -o intake.html`,
	RunE: runRender,
}

func init() {
	flags := renderCmd.Flags()
	flags.StringVarP(&renderFlags.renderer, "renderer", "r", "html", "renderer to use (html, tui)")
	flags.StringVarP(&renderFlags.output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVar(&renderFlags.section, "section", "", "section id to activate")
	flags.StringVar(&renderFlags.variant, "variant", "", "theme variant (overrides config)")
	flags.BoolVar(&renderFlags.linkCSS, "link-css", false, "link the theme stylesheet instead of inlining it")
	flags.StringVar(&renderFlags.templates, "templates", "", "directory holding templates/form.html to use instead of the bundled page")
	flags.StringArrayVar(&renderFlags.sets, "set", nil, "field value as name=value, repeatable")
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	ctrl, err := newController(ctx)
	if err != nil {
		return err
	}
	values, err := parseAssignments(renderFlags.sets)
	if err != nil {
		return err
	}
	applyValues(ctrl, values)
	if renderFlags.section != "" && !ctrl.ActivateID(renderFlags.section) {
		return fmt.Errorf("unknown section %q", renderFlags.section)
	}

	registry, err := buildRegistry()
	if err != nil {
		return err
	}
	out, contentType, err := registry.Render(ctx, renderFlags.renderer, ctrl.Snapshot())
	if err != nil {
		return err
	}
	logger.Debug("rendered questionnaire",
		zap.String("renderer", renderFlags.renderer),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(out)),
	)

	if renderFlags.output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(renderFlags.output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", renderFlags.output)
	return nil
}

func buildRegistry() (*render.Registry, error) {
	variant := cfg.ThemeVariant
	if renderFlags.variant != "" {
		variant = renderFlags.variant
	}
	themeCfg, err := html.ThemeConfig(html.DefaultManifest(), variant)
	if err != nil {
		return nil, err
	}
	htmlRenderer, err := html.New(
		html.WithTheme(themeCfg),
		html.WithTemplatesDir(renderFlags.templates),
		html.WithInlineStylesheet(!renderFlags.linkCSS),
	)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(htmlRenderer, tui.NewRenderer(tui.DefaultTheme)), nil
}

// parseAssignments turns name=value pairs into a map. Only the first "=" splits,
// so values may contain "=" and ",".
func parseAssignments(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: want name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}

// applyValues sets values in name order so trigger effects are deterministic.
func applyValues(ctrl *form.Controller, values map[string]string) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ctrl.SetValue(name, values[name])
	}
}
