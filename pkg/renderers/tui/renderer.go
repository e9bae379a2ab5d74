package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-intake/pkg/render"
)

// Renderer implements render.Renderer for terminals: it prints the tab strip,
// the visible fields of the active section and any messages as plain text.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer constructs the text renderer.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, snap render.Snapshot) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(r.format(snap)), nil
}

func (r *Renderer) format(snap render.Snapshot) string {
	var b strings.Builder
	if snap.Title != "" {
		b.WriteString(snap.Title)
		b.WriteString("\n")
	}
	b.WriteString(tabStrip(snap))
	b.WriteString("\n")

	if section, ok := snap.ActiveSection(); ok {
		fmt.Fprintf(&b, "\n%s (%d/%d)\n", section.Title, snap.ActiveIndex+1, len(snap.Sections))
		for _, field := range section.VisibleFields() {
			b.WriteString("  ")
			b.WriteString(fieldLine(field))
			b.WriteString("\n")
		}
	}

	if errs := render.NormalizeMessages(snap.Errors); len(errs) > 0 {
		b.WriteString("\nPlease correct the following errors:\n")
		for _, msg := range errs {
			b.WriteString(r.theme.ErrorPrefix)
			b.WriteString(msg)
			b.WriteString("\n")
		}
	}
	if snap.Success != "" {
		b.WriteString("\n")
		b.WriteString(r.theme.SuccessPrefix)
		b.WriteString(snap.Success)
		b.WriteString("\n")
	}
	if snap.Submitting {
		b.WriteString("\nCALCULATING...\n")
	}
	return b.String()
}

func tabStrip(snap render.Snapshot) string {
	tabs := make([]string, 0, len(snap.Sections))
	for _, section := range snap.Sections {
		title := section.Title
		if title == "" {
			title = section.ID
		}
		if section.Active {
			title = "[" + title + "]"
		}
		tabs = append(tabs, title)
	}
	return strings.Join(tabs, " | ")
}

func fieldLine(field render.FieldView) string {
	value := field.Value
	if value == "" {
		value = "-"
	}
	line := field.Label + ": " + value
	if field.Unit != "" && field.Value != "" {
		line += " " + field.Unit
	}
	if field.Feedback == "invalid" {
		line += " (!)"
	}
	return line
}
