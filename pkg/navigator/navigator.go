// Package navigator tracks the active section of a tabbed form.
//
// The navigator holds an explicit active index over a fixed, ordered list of
// sections. Out-of-range requests are absorbed as no-ops; there is no wrap
// around and no terminal state.
package navigator

import (
	"errors"
	"strings"
)

// ErrNoSections is returned when a navigator is built without sections.
var ErrNoSections = errors.New("navigator: at least one section is required")

// Section identifies one tab of the form.
type Section struct {
	ID    string
	Title string
}

// State is the derived navigation view after any operation.
type State struct {
	Index         int
	SectionID     string
	CanGoPrevious bool
	CanGoNext     bool
}

// Navigator is not safe for concurrent use.
type Navigator struct {
	sections []Section
	active   int
}

// New returns a navigator positioned on the first section.
func New(sections []Section) (*Navigator, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	return &Navigator{sections: append([]Section(nil), sections...)}, nil
}

// Len returns the number of sections.
func (n *Navigator) Len() int {
	return len(n.sections)
}

// Sections returns a copy of the ordered sections.
func (n *Navigator) Sections() []Section {
	return append([]Section(nil), n.sections...)
}

// ActiveIndex returns the index of the active section.
func (n *Navigator) ActiveIndex() int {
	return n.active
}

// Active returns the active section.
func (n *Navigator) Active() Section {
	return n.sections[n.active]
}

// IsActive reports whether index is the active section.
func (n *Navigator) IsActive(index int) bool {
	return index == n.active
}

// Activate moves to index and reports whether the request was in range.
// Out-of-range indexes leave the state untouched.
func (n *Navigator) Activate(index int) bool {
	if index < 0 || index >= len(n.sections) {
		return false
	}
	n.active = index
	return true
}

// ActivateID moves to the section with id, the tab-click path.
func (n *Navigator) ActivateID(id string) bool {
	return n.Activate(n.IndexOf(id))
}

// IndexOf returns the position of the section with id, or -1.
func (n *Navigator) IndexOf(id string) int {
	id = strings.TrimSpace(id)
	for i, section := range n.sections {
		if section.ID == id {
			return i
		}
	}
	return -1
}

// Next advances one section unless already on the last.
func (n *Navigator) Next() bool {
	if !n.CanGoNext() {
		return false
	}
	return n.Activate(n.active + 1)
}

// Previous steps back one section unless already on the first.
func (n *Navigator) Previous() bool {
	if !n.CanGoPrevious() {
		return false
	}
	return n.Activate(n.active - 1)
}

// CanGoNext is false exactly on the last section.
func (n *Navigator) CanGoNext() bool {
	return n.active < len(n.sections)-1
}

// CanGoPrevious is false exactly on the first section.
func (n *Navigator) CanGoPrevious() bool {
	return n.active > 0
}

// Reset returns to the first section.
func (n *Navigator) Reset() {
	n.active = 0
}

// State returns the current navigation view.
func (n *Navigator) State() State {
	return State{
		Index:         n.active,
		SectionID:     n.sections[n.active].ID,
		CanGoPrevious: n.CanGoPrevious(),
		CanGoNext:     n.CanGoNext(),
	}
}
