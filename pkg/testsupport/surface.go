package testsupport

import (
	"github.com/goliatone/go-intake/pkg/form"
)

// RecordingSurface keeps the last state pushed by a form controller. The
// controller serialises surface calls under its own lock, so reads are safe
// once the triggering call has returned.
type RecordingSurface struct {
	Active      string
	Index       int
	CanPrevious bool
	CanNext     bool
	Groups      map[string]bool
	Submitting  bool
	Errors      []string
	Success     string
}

var _ form.Surface = (*RecordingSurface)(nil)

func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{Groups: map[string]bool{}}
}

func (r *RecordingSurface) ActivateSection(id string, index int) { r.Active, r.Index = id, index }

func (r *RecordingSurface) SetNavigation(canGoPrevious, canGoNext bool) {
	r.CanPrevious, r.CanNext = canGoPrevious, canGoNext
}

func (r *RecordingSurface) SetGroupVisible(group string, visible bool) { r.Groups[group] = visible }
func (r *RecordingSurface) SetSubmitting(busy bool)                    { r.Submitting = busy }
func (r *RecordingSurface) ShowErrors(messages []string) {
	r.Errors = append([]string(nil), messages...)
}
func (r *RecordingSurface) ShowSuccess(message string) { r.Success = message }

func (r *RecordingSurface) ClearMessages() {
	r.Errors = nil
	r.Success = ""
}
