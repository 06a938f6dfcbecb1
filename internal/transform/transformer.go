// =============================================================================
// Sales Analyzer - Transformation Engine
// =============================================================================
//
// This module normalises raw cell text before it is validated. Sales exports
// from different shops spell the same product differently ("usb-c cable",
// "USB-C Cable ") and the per-product aggregates only group correctly once
// those spellings agree.
//
// TRANSFORMATION TYPES:
//   - trim, uppercase, lowercase, title_case
//   - replace, regex_replace
//   - prepend_string, append_string
//   - lookup (values missing from the table pass through)
//
// Rules are configured per column in config.yaml:
//
//   transformation_rules:
//     - field: Product
//       actions:
//         - type: trim
//         - type: lookup
//           lookup_table: {"usb-c cable": "USB-C Charging Cable"}
//
// =============================================================================

package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ginjaninja78/sales-analyzer/internal/config"
	"github.com/ginjaninja78/sales-analyzer/internal/csvparser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer applies the configured rules to row values.
type Transformer struct {
	rules   map[string][]config.TransformationAction
	regexes map[string]*regexp.Regexp
	title   cases.Caser
}

// NewTransformer creates a Transformer and checks every action up front, so a
// bad rule fails at startup instead of on the first matching row.
//
// RETURNS:
//   - The transformer.
//   - An error naming the field and action type of the first invalid action.
func NewTransformer(rules []config.TransformationRule) (*Transformer, error) {
	t := &Transformer{
		rules:   make(map[string][]config.TransformationAction),
		regexes: make(map[string]*regexp.Regexp),
		title:   cases.Title(language.Und),
	}

	for _, rule := range rules {
		for _, action := range rule.Actions {
			if err := t.prepare(action); err != nil {
				return nil, fmt.Errorf("rule for field '%s': %w", rule.Field, err)
			}
		}
		// Two rules for one field run one after the other.
		t.rules[rule.Field] = append(t.rules[rule.Field], rule.Actions...)
	}

	return t, nil
}

// Empty reports whether the transformer has no rules.
func (t *Transformer) Empty() bool {
	return t == nil || len(t.rules) == 0
}

// prepare validates an action and compiles its pattern if it has one.
func (t *Transformer) prepare(action config.TransformationAction) error {
	switch action.Type {
	case "trim", "uppercase", "lowercase", "title_case",
		"replace", "prepend_string", "append_string", "lookup":
		return nil
	case "regex_replace":
		if action.Find == "" {
			return nil
		}
		if _, ok := t.regexes[action.Find]; ok {
			return nil
		}
		re, err := regexp.Compile(action.Find)
		if err != nil {
			return fmt.Errorf("invalid regex pattern %q: %w", action.Find, err)
		}
		t.regexes[action.Find] = re
		return nil
	default:
		return fmt.Errorf("unknown transformation type: %s", action.Type)
	}
}

// =============================================================================
// TRANSFORMATION FUNCTIONS
// =============================================================================

// Transform applies the rules for fieldName to value. Fields without rules
// are returned unchanged.
func (t *Transformer) Transform(fieldName, value string) string {
	if t.Empty() {
		return value
	}
	for _, action := range t.rules[fieldName] {
		value = t.apply(value, action)
	}
	return value
}

// TransformRow applies the rules to every field of the row in place.
// Cells holding a missing-value token are left as they are, so a rule can
// never turn an absent value into a present one.
func (t *Transformer) TransformRow(fields map[string]string, missing []string) {
	if t.Empty() {
		return
	}
	for fieldName := range t.rules {
		value, ok := fields[fieldName]
		if !ok || csvparser.IsMissing(value, missing) {
			continue
		}
		fields[fieldName] = t.Transform(fieldName, value)
	}
}

// apply applies a single, already validated action.
func (t *Transformer) apply(value string, action config.TransformationAction) string {
	switch action.Type {

	// =========================================================================
	// STRING MANIPULATIONS
	// =========================================================================

	case "trim":
		return strings.TrimSpace(value)

	case "uppercase":
		return strings.ToUpper(value)

	case "lowercase":
		return strings.ToLower(value)

	case "title_case":
		// EXAMPLE:
		//   Input:  "usb-c charging cable"
		//   Output: "Usb-C Charging Cable"
		return t.title.String(value)

	case "prepend_string":
		return action.Value + value

	case "append_string":
		return value + action.Value

	// =========================================================================
	// REPLACEMENTS
	// =========================================================================

	case "replace":
		if action.Find == "" {
			return value
		}
		return strings.ReplaceAll(value, action.Find, action.Value)

	case "regex_replace":
		// EXAMPLE:
		//   Input:  "Widget  (v2)"
		//   Action: regex_replace with find "\s*\(.*\)$" and value ""
		//   Output: "Widget"
		re, ok := t.regexes[action.Find]
		if !ok {
			return value
		}
		return re.ReplaceAllString(value, action.Value)

	// =========================================================================
	// LOOKUP TABLE REPLACEMENTS
	// =========================================================================

	case "lookup":
		if replacement, exists := action.LookupTable[value]; exists {
			return replacement
		}
		return value
	}

	return value
}
