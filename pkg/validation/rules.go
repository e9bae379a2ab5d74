package validation

import "strings"

// Rule describes the checks applied to a single named field. Rules are static
// configuration; a Validator never mutates them.
type Rule struct {
	Field    string   `json:"field" yaml:"field"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Numeric  bool     `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	Min      *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	// RangeMessage is reported when a numeric value falls outside [Min, Max].
	RangeMessage string `json:"rangeMessage,omitempty" yaml:"rangeMessage,omitempty"`
}

// HasRange reports whether the rule bounds the value on either side.
func (r Rule) HasRange() bool {
	return r.Min != nil || r.Max != nil
}

// DisplayLabel returns the label used in required/numeric messages. Without an
// explicit label the first underscore of the field name becomes a space, so
// "maternal_age" reads "maternal age".
func (r Rule) DisplayLabel() string {
	if label := strings.TrimSpace(r.Label); label != "" {
		return label
	}
	return strings.Replace(r.Field, "_", " ", 1)
}

func (r Rule) requiredMessage() string {
	return r.DisplayLabel() + " is required"
}

func (r Rule) numericMessage() string {
	return r.DisplayLabel() + " must be a number"
}

func (r Rule) rangeMessage() string {
	if msg := strings.TrimSpace(r.RangeMessage); msg != "" {
		return msg
	}
	switch {
	case r.Min != nil && r.Max != nil:
		return r.Field + " should be between " + formatBound(*r.Min) + " and " + formatBound(*r.Max)
	case r.Min != nil:
		return r.Field + " should be at least " + formatBound(*r.Min)
	default:
		return r.Field + " should be at most " + formatBound(*r.Max)
	}
}

// DefaultRules returns the obstetric intake rule table in declaration order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Field:        "maternal_age",
			Required:     true,
			Numeric:      true,
			Min:          bound(10),
			Max:          bound(60),
			RangeMessage: "Maternal age should be between 10 and 60 years",
		},
		{
			Field:        "gestation_weeks",
			Required:     true,
			Numeric:      true,
			Min:          bound(4),
			Max:          bound(42),
			RangeMessage: "Gestational weeks should be between 4 and 42",
		},
		{
			Field:        "gestation_days",
			Numeric:      true,
			Min:          bound(0),
			Max:          bound(6),
			RangeMessage: "Gestational days should be between 0 and 6",
		},
		{
			Field:    "bmi",
			Required: true,
			Numeric:  true,
		},
		apgarRule("apgar_1min"),
		apgarRule("apgar_5min"),
		apgarRule("apgar_10min"),
	}
}

func apgarRule(field string) Rule {
	return Rule{
		Field:   field,
		Numeric: true,
		Min:     bound(0),
		Max:     bound(10),
	}
}

func bound(v float64) *float64 {
	return &v
}
