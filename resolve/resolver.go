package resolve

import (
	"strings"

	"github.com/vitalflux/vitalflux/ref"
	"github.com/vitalflux/vitalflux/schema"
	"github.com/vitalflux/vitalflux/widget"
)

// ============================================================================
// PATH RESOLVER — Walks parsed references against the schema registry
// ============================================================================
// Resolution failures are filtered, never thrown: a reference naming an
// unknown table or field simply contributes nothing to the binding. A
// widget whose value list empties out is "not yet ready", not broken.
// ============================================================================

// defaultMeasureTitle labels a measure whose call supplied no alias.
const defaultMeasureTitle = "Value"

// Resolver binds parsed references to registry fields. The registry is an
// explicit dependency — resolution never reaches through ambient state.
type Resolver struct {
	reg *schema.Registry
}

// New creates a resolver over the given registry.
func New(reg *schema.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Column resolves a field reference to a bound column. Date columns are
// always widened: a missing granularity gets the default (Days, or Months
// for fields named "month") because the renderer cannot use an untyped
// date reference. A granularity on a non-date field, or one the field
// doesn't expose, is unresolvable.
func (r *Resolver) Column(f ref.FieldRef) (Column, bool) {
	fld, ok := r.reg.LookupField(f.Table, f.Field)
	if !ok {
		return Column{}, false
	}

	gran := f.Granularity
	switch {
	case fld.IsDate() && gran == "":
		gran = r.reg.DefaultGranularity(f.Table, f.Field)
	case fld.IsDate():
		if !fld.HasGranularity(gran) {
			return Column{}, false
		}
	case gran != "":
		return Column{}, false
	}

	return Column{
		Table:       fld.Table,
		Field:       fld.Name,
		Kind:        fld.Kind,
		Granularity: gran,
		Expression:  r.reg.Expression(fld),
	}, true
}

// Measure resolves an aggregation reference. If the inner field is
// unresolvable, the whole measure is unresolvable.
func (r *Resolver) Measure(m ref.MeasureRef) (Measure, bool) {
	col, ok := r.Column(m.Target)
	if !ok {
		return Measure{}, false
	}
	title := m.Alias
	if title == "" {
		title = defaultMeasureTitle
	}
	return Measure{Aggregation: m.Aggregation, Column: col, Title: title}, true
}

// ByName resolves a bare human-readable attribute name — the model
// occasionally returns "region" instead of "DM.<table>.region". Matching
// is case-insensitive and punctuation-stripped against field names, first
// match wins in catalog order. Date fields matched by name prefer Months.
func (r *Resolver) ByName(name string) (Column, bool) {
	target := normalizeName(name)
	if target == "" {
		return Column{}, false
	}
	for _, t := range r.reg.Tables() {
		for _, f := range t.Fields {
			if normalizeName(f.Name) != target {
				continue
			}
			gran := ""
			if f.IsDate() {
				gran = "Months"
			}
			return Column{
				Table:       f.Table,
				Field:       f.Name,
				Kind:        f.Kind,
				Granularity: gran,
				Expression:  r.reg.Expression(f),
			}, true
		}
	}
	return Column{}, false
}

// DataOptions resolves a validated config into a render-ready binding,
// filtering every entry that fails to parse or resolve.
func (r *Resolver) DataOptions(cfg widget.Config) ResolvedBinding {
	out := ResolvedBinding{
		DataSource: r.reg.Source(),
		ChartType:  cfg.ChartType,
		Title:      cfg.Title,
		Category:   r.columns(cfg.DataOptions.Category),
		Value:      r.series(cfg.DataOptions.Value),
		BreakBy:    r.columns(cfg.DataOptions.BreakBy),
	}
	// Secondary values only make sense on indicator charts.
	if cfg.ChartType.IsIndicator() {
		out.Secondary = r.series(cfg.DataOptions.Secondary)
	}
	return out
}

// columns resolves a category-style list: DM paths first, then the bare
// attribute-name convenience path.
func (r *Resolver) columns(exprs []string) []Column {
	var out []Column
	for _, expr := range exprs {
		if f, ok := ref.ParseField(expr); ok {
			if col, ok := r.Column(f); ok {
				out = append(out, col)
			}
			continue
		}
		if col, ok := r.ByName(expr); ok {
			out = append(out, col)
		}
	}
	return out
}

// series resolves a value-style list. Measures and plain columns both
// qualify; a bare attribute name gets wrapped in a count measure labeled
// with the original expression, mirroring how an analyst would read it.
func (r *Resolver) series(exprs []string) []Series {
	var out []Series
	for _, expr := range exprs {
		parsed, ok := ref.Parse(expr)
		if !ok {
			if col, ok := r.ByName(expr); ok {
				m := Measure{Aggregation: "count", Column: col, Title: expr}
				out = append(out, Series{Measure: &m})
			}
			continue
		}
		switch v := parsed.(type) {
		case ref.MeasureRef:
			if m, ok := r.Measure(v); ok {
				out = append(out, Series{Measure: &m})
			}
		case ref.FieldRef:
			if col, ok := r.Column(v); ok {
				out = append(out, Series{Column: &col})
			}
		}
	}
	return out
}

// normalizeName lowercases and strips everything outside [a-z0-9].
func normalizeName(s string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(s) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}
