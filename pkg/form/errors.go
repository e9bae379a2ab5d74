package form

import (
	"errors"

	"github.com/goliatone/go-intake/pkg/validation"
)

// ErrSubmissionPending is returned by Submit while another submission has not
// completed yet.
var ErrSubmissionPending = errors.New("form: submission already in progress")

// ValidationError aliases the validator's error so callers need a single import.
type ValidationError = validation.ValidationError

const (
	// SubmitSuccessMessage is shown when a simulated submission completes.
	SubmitSuccessMessage = "Assessment completed successfully!"
	// ResetSuccessMessage is shown after the form is reset.
	ResetSuccessMessage = "Form has been reset successfully!"
)
