package questionnaire

import (
	"github.com/goliatone/go-intake/pkg/navigator"
	"github.com/goliatone/go-intake/pkg/validation"
	"github.com/goliatone/go-intake/pkg/visibility"
)

// FieldKind selects the control used to collect a field.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindNumber FieldKind = "number"
	// KindYesNo fields are the paired yes/no buttons that drive conditional groups.
	KindYesNo  FieldKind = "yesno"
	KindSelect FieldKind = "select"
)

const (
	// ValueYes and ValueNo are the values written by yes/no controls.
	ValueYes = "yes"
	ValueNo  = "no"
)

// Store keeps the parsed questionnaires keyed by id. It is safe for concurrent
// readers when treated as immutable after construction.
type Store struct {
	definitions map[string]Definition
}

// Definition is the static configuration of one questionnaire.
type Definition struct {
	ID       string
	Source   string
	Title    string
	Subtitle string
	Sections []Section
	Fields   []Field
	Rules    []validation.Rule
	Bindings []visibility.Binding
}

// Section is one tab of the questionnaire.
type Section struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Order       *int   `json:"order,omitempty" yaml:"order,omitempty"`
}

// Field describes a single named input.
type Field struct {
	Name    string    `json:"name" yaml:"name"`
	Label   string    `json:"label,omitempty" yaml:"label,omitempty"`
	Section string    `json:"section" yaml:"section"`
	Kind    FieldKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	// Group names the conditional group the field belongs to, if any.
	Group   string   `json:"group,omitempty" yaml:"group,omitempty"`
	Default string   `json:"default,omitempty" yaml:"default,omitempty"`
	Unit    string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Help    string   `json:"help,omitempty" yaml:"help,omitempty"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
	// ResetExempt fields keep their current value when the form is reset.
	ResetExempt bool `json:"resetExempt,omitempty" yaml:"resetExempt,omitempty"`
}

// NavigatorSections converts the ordered sections for the tab navigator.
func (d Definition) NavigatorSections() []navigator.Section {
	out := make([]navigator.Section, 0, len(d.Sections))
	for _, section := range d.Sections {
		out = append(out, navigator.Section{ID: section.ID, Title: section.Title})
	}
	return out
}

// Field returns the field called name.
func (d Definition) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldsIn returns the fields of a section in declaration order.
func (d Definition) FieldsIn(sectionID string) []Field {
	var out []Field
	for _, field := range d.Fields {
		if field.Section == sectionID {
			out = append(out, field)
		}
	}
	return out
}

// Defaults returns the initial value of every field.
func (d Definition) Defaults() map[string]string {
	out := make(map[string]string, len(d.Fields))
	for _, field := range d.Fields {
		out[field.Name] = field.Default
	}
	return out
}
