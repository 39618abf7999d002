package ref

import (
	"regexp"
	"strings"
)

// ============================================================================
// REFERENCE PARSER — Fixed grammar for AI-emitted field expressions
// ============================================================================
// The generative model describes chart bindings as strings in exactly two
// forms:
//
//	DM.<table>.<field>[.<Granularity>]
//	measureFactory.<agg>(DM.<table>.<field>[.<Granularity>][, '<alias>'])
//
// This package is the only interpreter for those strings. Anything outside
// the grammar parses to nothing — junk in model output is expected, and
// callers filter absent references instead of erroring. No other mechanism
// may turn model text into live objects.
// ============================================================================

// Aggregation names accepted inside a measureFactory call.
var aggregations = map[string]bool{
	"sum":   true,
	"avg":   true,
	"count": true,
	"min":   true,
	"max":   true,
}

// ValidAggregation reports whether name is a recognized aggregation.
func ValidAggregation(name string) bool { return aggregations[name] }

// Reference is a parsed field or measure expression.
type Reference interface {
	// SourceTable returns the table the reference ultimately points at.
	SourceTable() string
	// String renders the canonical form of the reference.
	String() string
}

// FieldRef is a bare dimension/category reference.
type FieldRef struct {
	Table       string
	Field       string
	Granularity string // empty = unspecified; date refs are widened later
}

// SourceTable implements Reference.
func (f FieldRef) SourceTable() string { return f.Table }

// String renders the canonical DM path.
func (f FieldRef) String() string {
	s := "DM." + f.Table + "." + f.Field
	if f.Granularity != "" {
		s += "." + f.Granularity
	}
	return s
}

// MeasureRef is an aggregation wrapped around a field reference.
type MeasureRef struct {
	Aggregation string
	Target      FieldRef
	Alias       string // empty = no alias supplied
}

// SourceTable implements Reference.
func (m MeasureRef) SourceTable() string { return m.Target.Table }

// String renders the canonical measureFactory call.
func (m MeasureRef) String() string {
	s := "measureFactory." + m.Aggregation + "(" + m.Target.String()
	if m.Alias != "" {
		s += ", '" + m.Alias + "'"
	}
	return s + ")"
}

var measurePattern = regexp.MustCompile(
	`^measureFactory\.(\w+)\(([^,)]+)(?:,\s*['"](.*?)['"]\s*)?\)$`)

// Parse interprets a single expression string. The boolean is false for
// anything outside the grammar: absence, not a partial reference.
func Parse(expr string) (Reference, bool) {
	expr = strings.TrimSpace(expr)

	if strings.HasPrefix(expr, "DM.") {
		f, ok := parseFieldPath(expr)
		if !ok {
			return nil, false
		}
		return f, true
	}

	if strings.HasPrefix(expr, "measureFactory.") {
		m := measurePattern.FindStringSubmatch(expr)
		if m == nil {
			return nil, false
		}
		agg, arg, alias := m[1], m[2], m[3]
		if !ValidAggregation(agg) {
			return nil, false
		}
		// The model sometimes pads the inner argument with whitespace.
		target, ok := parseFieldPath(strings.TrimSpace(arg))
		if !ok {
			return nil, false
		}
		return MeasureRef{Aggregation: agg, Target: target, Alias: alias}, true
	}

	return nil, false
}

// ParseField is Parse restricted to the bare field form.
func ParseField(expr string) (FieldRef, bool) {
	r, ok := Parse(expr)
	if !ok {
		return FieldRef{}, false
	}
	f, ok := r.(FieldRef)
	return f, ok
}

func parseFieldPath(expr string) (FieldRef, bool) {
	parts := strings.Split(expr, ".")
	if len(parts) < 3 || len(parts) > 4 || parts[0] != "DM" {
		return FieldRef{}, false
	}
	for _, p := range parts[1:] {
		if p == "" {
			return FieldRef{}, false
		}
	}
	f := FieldRef{Table: parts[1], Field: parts[2]}
	if len(parts) == 4 {
		f.Granularity = parts[3]
	}
	return f, true
}
