package validation

import "strings"

// ValidationError carries the user-facing messages produced by a failed
// validation. It is the only error surfaced to people filling in the form.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Messages) == 0 {
		return "validation: invalid input"
	}
	return "validation: " + strings.Join(e.Messages, "; ")
}
