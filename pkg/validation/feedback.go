package validation

// Feedback classifies a single value while it is being typed.
type Feedback string

const (
	// FeedbackNeutral means there is nothing to judge yet (blank or unknown field).
	FeedbackNeutral Feedback = "neutral"
	// FeedbackValid marks a value that satisfies its rule.
	FeedbackValid Feedback = "valid"
	// FeedbackInvalid marks a value that would fail validation.
	FeedbackInvalid Feedback = "invalid"
)

// Feedback returns live feedback for one field value. Blank values stay
// neutral even for required fields; the required message belongs to Validate.
func (v *Validator) Feedback(field, value string) Feedback {
	rule, ok := v.Rule(field)
	if !ok || isBlank(value) {
		return FeedbackNeutral
	}
	if checkValue(rule, value) != "" {
		return FeedbackInvalid
	}
	return FeedbackValid
}
