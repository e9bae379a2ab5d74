package render

import "strings"

// Snapshot is a render-ready copy of the whole form state. Renderers read it
// and never call back into the controller.
type Snapshot struct {
	Title         string
	Subtitle      string
	Sections      []SectionView
	ActiveIndex   int
	CanGoPrevious bool
	CanGoNext     bool
	// Groups maps conditional group names to their visibility.
	Groups     map[string]bool
	Values     map[string]string
	Errors     []string
	Success    string
	Submitting bool
}

// SectionView is one tab plus its fields.
type SectionView struct {
	ID          string
	Title       string
	Description string
	Active      bool
	Fields      []FieldView
}

// FieldView describes one input as it should be drawn.
type FieldView struct {
	Name    string
	Label   string
	Kind    string
	Group   string
	Unit    string
	Help    string
	Value   string
	Options []string
	// Hidden is true when the field's conditional group is collapsed.
	Hidden bool
	// Feedback is the live validation state: neutral, valid or invalid.
	Feedback string
}

// ActiveSection returns the section currently shown.
func (s Snapshot) ActiveSection() (SectionView, bool) {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Sections) {
		return SectionView{}, false
	}
	return s.Sections[s.ActiveIndex], true
}

// VisibleFields filters out fields whose group is hidden.
func (v SectionView) VisibleFields() []FieldView {
	out := make([]FieldView, 0, len(v.Fields))
	for _, field := range v.Fields {
		if !field.Hidden {
			out = append(out, field)
		}
	}
	return out
}

// NormalizeMessages trims messages and drops blanks and duplicates while
// preserving order.
func NormalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
