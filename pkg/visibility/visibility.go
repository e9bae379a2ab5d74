// Package visibility toggles conditional field groups from trigger values.
//
// Bindings are data: each one names a trigger field, the value that reveals
// the bound group, and the group itself. A Revealer holds the visible state of
// every bound group and starts with all of them hidden.
package visibility

import "sort"

// DefaultRevealValue is the trigger value that shows a group when a binding
// does not declare its own.
const DefaultRevealValue = "yes"

// Binding maps a trigger field to the group it reveals.
type Binding struct {
	Trigger string `json:"trigger" yaml:"trigger"`
	Group   string `json:"group" yaml:"group"`
	// Value reveals the group when the trigger equals it; defaults to "yes".
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// RevealValue returns the trigger value that shows the group.
func (b Binding) RevealValue() string {
	if b.Value == "" {
		return DefaultRevealValue
	}
	return b.Value
}

// DefaultBindings returns the intake questionnaire binding table.
func DefaultBindings() []Binding {
	return []Binding{
		{Trigger: "pregnancy_loss", Group: "pregnancyLossDetails"},
		{Trigger: "multiple_pregnancy", Group: "multiplePregnancyDetails"},
	}
}

// Revealer tracks group visibility. It is not safe for concurrent use; callers
// serialise access the same way they serialise UI events.
type Revealer struct {
	byTrigger map[string][]Binding
	visible   map[string]bool
}

// Default builds a Revealer over the intake binding table.
func Default() *Revealer {
	return NewRevealer(DefaultBindings()...)
}

// NewRevealer registers bindings and hides every bound group.
func NewRevealer(bindings ...Binding) *Revealer {
	r := &Revealer{
		byTrigger: make(map[string][]Binding, len(bindings)),
		visible:   make(map[string]bool, len(bindings)),
	}
	for _, binding := range bindings {
		if binding.Trigger == "" || binding.Group == "" {
			continue
		}
		r.byTrigger[binding.Trigger] = append(r.byTrigger[binding.Trigger], binding)
		r.visible[binding.Group] = false
	}
	return r
}

// OnTriggerChanged applies value to every group bound to trigger and reports
// whether any group changed state. Unknown triggers are ignored.
func (r *Revealer) OnTriggerChanged(trigger, value string) bool {
	if r == nil {
		return false
	}
	changed := false
	for _, binding := range r.byTrigger[trigger] {
		show := value == binding.RevealValue()
		if r.visible[binding.Group] != show {
			r.visible[binding.Group] = show
			changed = true
		}
	}
	return changed
}

// GroupsFor lists the groups bound to trigger in registration order.
func (r *Revealer) GroupsFor(trigger string) []string {
	if r == nil {
		return nil
	}
	bindings := r.byTrigger[trigger]
	out := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		out = append(out, binding.Group)
	}
	return out
}

// IsTrigger reports whether name drives any group.
func (r *Revealer) IsTrigger(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.byTrigger[name]
	return ok
}

// Visible reports whether group is shown. Unknown groups are hidden.
func (r *Revealer) Visible(group string) bool {
	if r == nil {
		return false
	}
	return r.visible[group]
}

// Groups returns a copy of the visibility map keyed by group.
func (r *Revealer) Groups() map[string]bool {
	if r == nil {
		return nil
	}
	out := make(map[string]bool, len(r.visible))
	for group, shown := range r.visible {
		out[group] = shown
	}
	return out
}

// GroupNames lists the registered groups in lexical order.
func (r *Revealer) GroupNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.visible))
	for group := range r.visible {
		names = append(names, group)
	}
	sort.Strings(names)
	return names
}

// Reset hides every group, the same state as a fresh Revealer.
func (r *Revealer) Reset() {
	if r == nil {
		return
	}
	for group := range r.visible {
		r.visible[group] = false
	}
}
