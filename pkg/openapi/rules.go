package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-intake/pkg/validation"
)

const (
	// OrderExtension lists property names in the order their rules apply.
	OrderExtension = "x-intake-order"
	// RangeMessageExtension overrides the generated out-of-range message.
	RangeMessageExtension = "x-range-message"
)

// ErrSchemaNotFound is returned when the named component schema is missing.
var ErrSchemaNotFound = errors.New("openapi: component schema not found")

// Rules converts the properties of a component schema into validation rules.
//
// A property yields a rule when it is required, numeric (number or integer) or
// bounded by minimum/maximum. Rules follow the schema's x-intake-order list;
// properties it omits are appended in lexical order. The property title becomes
// the rule label.
func Rules(ctx context.Context, doc Document, schemaName string) ([]validation.Rule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", doc.Location(), err)
	}

	schema, err := componentSchema(spec, schemaName)
	if err != nil {
		return nil, err
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var rules []validation.Rule
	for _, name := range propertyOrder(schema) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		rule, ok := ruleFor(name, ref.Value, required[name])
		if ok {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func componentSchema(spec *openapi3.T, name string) (*openapi3.Schema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("openapi: schema name is required")
	}
	if spec.Components == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	ref, ok := spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	return ref.Value, nil
}

func ruleFor(name string, prop *openapi3.Schema, required bool) (validation.Rule, bool) {
	rule := validation.Rule{
		Field:    name,
		Label:    strings.TrimSpace(prop.Title),
		Required: required,
		Numeric:  isNumeric(prop.Type),
		Min:      copyBound(prop.Min),
		Max:      copyBound(prop.Max),
	}
	if msg, ok := prop.Extensions[RangeMessageExtension].(string); ok {
		rule.RangeMessage = strings.TrimSpace(msg)
	}
	if !rule.Required && !rule.Numeric && !rule.HasRange() {
		return validation.Rule{}, false
	}
	return rule, true
}

// propertyOrder returns the ordered names from x-intake-order followed by the
// remaining properties sorted by name.
func propertyOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]bool, len(schema.Properties))
	var out []string

	if list, ok := schema.Extensions[OrderExtension].([]any); ok {
		for _, item := range list {
			name, ok := item.(string)
			if !ok || seen[name] {
				continue
			}
			if _, exists := schema.Properties[name]; !exists {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}

	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func isNumeric(types *openapi3.Types) bool {
	if types == nil {
		return false
	}
	for _, typ := range types.Slice() {
		if typ == openapi3.TypeNumber || typ == openapi3.TypeInteger {
			return true
		}
	}
	return false
}

func copyBound(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
