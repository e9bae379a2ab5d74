package form

// Surface receives state changes so an adapter can draw them. Calls are made
// while the controller holds its lock, so implementations must not call back
// into the controller synchronously.
type Surface interface {
	ActivateSection(id string, index int)
	SetNavigation(canGoPrevious, canGoNext bool)
	SetGroupVisible(group string, visible bool)
	SetSubmitting(busy bool)
	ShowErrors(messages []string)
	ShowSuccess(message string)
	ClearMessages()
}

// NopSurface discards every update. It is the default when no surface is set.
type NopSurface struct{}

func (NopSurface) ActivateSection(string, int)  {}
func (NopSurface) SetNavigation(bool, bool)     {}
func (NopSurface) SetGroupVisible(string, bool) {}
func (NopSurface) SetSubmitting(bool)           {}
func (NopSurface) ShowErrors([]string)          {}
func (NopSurface) ShowSuccess(string)           {}
func (NopSurface) ClearMessages()               {}
