package validation

import (
	"math"
	"strconv"
	"strings"
)

// Validator evaluates a flat field map against an ordered rule table.
type Validator struct {
	rules []Rule
}

// New builds a Validator over rules. The slice is copied so callers can reuse
// it.
func New(rules ...Rule) *Validator {
	return &Validator{rules: append([]Rule(nil), rules...)}
}

// Default builds a Validator over the intake rule table.
func Default() *Validator {
	return New(DefaultRules()...)
}

// Rules returns a copy of the configured rules in declaration order.
func (v *Validator) Rules() []Rule {
	if v == nil {
		return nil
	}
	return append([]Rule(nil), v.rules...)
}

// Rule returns the rule configured for field.
func (v *Validator) Rule(field string) (Rule, bool) {
	if v == nil {
		return Rule{}, false
	}
	for _, rule := range v.rules {
		if rule.Field == field {
			return rule, true
		}
	}
	return Rule{}, false
}

// Validate reports every violation in fields. Missing required values come
// first in declaration order, followed by numeric and range violations in
// declaration order. A blank value only ever yields the required message and a
// present value never does, so each field contributes at most one message.
func (v *Validator) Validate(fields map[string]string) []string {
	if v == nil {
		return nil
	}

	var errs []string
	for _, rule := range v.rules {
		if rule.Required && isBlank(fields[rule.Field]) {
			errs = append(errs, rule.requiredMessage())
		}
	}

	for _, rule := range v.rules {
		raw, ok := fields[rule.Field]
		if !ok || isBlank(raw) {
			continue
		}
		if msg := checkValue(rule, raw); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

// Check wraps Validate, returning a *ValidationError when any rule fails.
func (v *Validator) Check(fields map[string]string) error {
	errs := v.Validate(fields)
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Messages: errs}
}

func checkValue(rule Rule, raw string) string {
	if !rule.Numeric && !rule.HasRange() {
		return ""
	}
	value, err := parseNumber(raw)
	if err != nil {
		return rule.numericMessage()
	}
	if !inRange(rule, value) {
		return rule.rangeMessage()
	}
	return ""
}

func inRange(rule Rule, value float64) bool {
	if rule.Min != nil && value < *rule.Min {
		return false
	}
	if rule.Max != nil && value > *rule.Max {
		return false
	}
	return true
}

func parseNumber(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
