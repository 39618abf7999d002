package widget

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vitalflux/vitalflux/ref"
	"github.com/vitalflux/vitalflux/schema"
)

// ============================================================================
// VALIDATOR / REPAIRER — Normalizes raw model output into a usable Config
// ============================================================================
// The generator is schema-aware but not perfectly reliable. Two invariants
// are enforced here because the rendering collaborator cannot recover from
// them downstream:
//
//	1. Untyped date references are unusable — they are repaired (widened to
//	   the default granularity) rather than rejected, to keep the chat
//	   experience smooth.
//	2. One chart = one table. The renderer cannot join, so a config mixing
//	   tables is rejected with both table names in the message.
//
// Error messages are shown to the end user verbatim in the chat transcript.
// ============================================================================

// Validation error codes.
const (
	CodeMalformed        = "malformed"
	CodeUnsupportedChart = "unsupported chart type"
	CodeCrossTable       = "cross-table reference"
)

// ValidationError is a user-displayable rejection of a model-produced
// config. The widget is never created when one is returned.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func errMalformed() *ValidationError {
	return &ValidationError{
		Code:    CodeMalformed,
		Message: "The response did not contain a valid widget configuration.",
	}
}

func errUnsupportedChart(ct string) *ValidationError {
	allowed := make([]string, len(ChartTypes))
	for i, t := range ChartTypes {
		allowed[i] = string(t)
	}
	return &ValidationError{
		Code: CodeUnsupportedChart,
		Message: fmt.Sprintf("Chart type %q is not supported. Supported types: %s.",
			ct, strings.Join(allowed, ", ")),
	}
}

func errCrossTable(tables []string) *ValidationError {
	return &ValidationError{
		Code: CodeCrossTable,
		Message: fmt.Sprintf("A single chart cannot mix fields from multiple tables (found %s).",
			strings.Join(tables, " and ")),
	}
}

// Normalize turns a raw JSON object into a validated, repaired Config.
// Steps, in order: structural check, chart-type allowlist, granularity
// auto-repair, single-table invariant. On success the Config satisfies
// both the chart-type and single-table invariants.
func Normalize(reg *schema.Registry, raw []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errMalformed()
	}
	if cfg.ChartType == "" || len(cfg.DataOptions.Value) == 0 {
		return Config{}, errMalformed()
	}
	for _, v := range cfg.DataOptions.Value {
		if strings.TrimSpace(v) == "" {
			return Config{}, errMalformed()
		}
	}

	if !cfg.ChartType.Valid() {
		return Config{}, errUnsupportedChart(string(cfg.ChartType))
	}

	cfg.DataOptions = Repair(reg, cfg.DataOptions)

	if tables := referencedTables(cfg.DataOptions); len(tables) > 1 {
		return Config{}, errCrossTable(tables)
	}

	if cfg.Title == "" {
		cfg.Title = "Untitled Widget"
	}
	return cfg, nil
}

// Repair applies the granularity auto-repair pass: any date-field reference
// lacking a granularity suffix gets the default appended (Days for plain
// date fields, Months for fields named "month"). Runs on category, breakBy,
// secondary, and on the inner field argument of every measureFactory call
// in value. Idempotent.
func Repair(reg *schema.Registry, opts DataOptions) DataOptions {
	out := DataOptions{
		Category:  repairList(reg, opts.Category),
		Value:     make([]string, len(opts.Value)),
		BreakBy:   repairList(reg, opts.BreakBy),
		Secondary: repairList(reg, opts.Secondary),
	}
	for i, expr := range opts.Value {
		out.Value[i] = repairMeasureExpr(reg, expr)
	}
	return out
}

func repairList(reg *schema.Registry, exprs []string) []string {
	if exprs == nil {
		return nil
	}
	out := make([]string, len(exprs))
	for i, expr := range exprs {
		out[i] = repairFieldExpr(reg, expr)
	}
	return out
}

// repairFieldExpr widens a bare date reference. Unparseable strings pass
// through untouched — the resolver filters them later.
func repairFieldExpr(reg *schema.Registry, expr string) string {
	f, ok := ref.ParseField(expr)
	if !ok || f.Granularity != "" {
		return expr
	}
	g := reg.DefaultGranularity(f.Table, f.Field)
	if g == "" {
		return expr
	}
	f.Granularity = g
	return f.String()
}

// repairMeasureExpr widens the inner field argument of a measureFactory
// call. Bare field entries in value are left to the resolver's own
// mandatory widening.
func repairMeasureExpr(reg *schema.Registry, expr string) string {
	r, ok := ref.Parse(expr)
	if !ok {
		return expr
	}
	m, ok := r.(ref.MeasureRef)
	if !ok || m.Target.Granularity != "" {
		return expr
	}
	g := reg.DefaultGranularity(m.Target.Table, m.Target.Field)
	if g == "" {
		return expr
	}
	m.Target.Granularity = g
	return m.String()
}

// referencedTables collects the distinct tables named across all four
// data-option lists, sorted. Unparseable entries contribute nothing.
func referencedTables(opts DataOptions) []string {
	seen := map[string]bool{}
	for _, list := range [][]string{opts.Category, opts.Value, opts.BreakBy, opts.Secondary} {
		for _, expr := range list {
			if r, ok := ref.Parse(expr); ok {
				seen[r.SourceTable()] = true
			}
		}
	}
	tables := make([]string, 0, len(seen))
	for t := range seen {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}
