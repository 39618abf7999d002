package resolve

import (
	"github.com/vitalflux/vitalflux/schema"
	"github.com/vitalflux/vitalflux/widget"
)

// ============================================================================
// BINDINGS — Render-ready output handed to the charting collaborator
// ============================================================================
// A ResolvedBinding is recomputed from its widget config on every render;
// bindings are never cached across configs and never shared between
// widgets. The renderer owns the binding for its lifetime.
// ============================================================================

// PlaceholderMessage is shown while a widget has no resolvable values.
// Partial or junk model output is a steady-state condition, so this is a
// neutral waiting state, never an error banner.
const PlaceholderMessage = "Waiting for valid data configuration..."

// Column is a bound dimension or attribute reference.
type Column struct {
	Table       string           `json:"table"`
	Field       string           `json:"field"`
	Kind        schema.FieldKind `json:"kind"`
	Granularity string           `json:"granularity,omitempty"` // date columns only, always set for them
	Expression  string           `json:"expression"`
}

// Measure is a bound aggregation over a column.
type Measure struct {
	Aggregation string `json:"aggregation"`
	Column      Column `json:"column"`
	Title       string `json:"title"`
}

// Series is one value-axis entry: either a plain column or a measure.
// Color is empty until ApplyStyle runs.
type Series struct {
	Column  *Column  `json:"column,omitempty"`
	Measure *Measure `json:"measure,omitempty"`
	Color   string   `json:"color,omitempty"`
}

// ResolvedBinding is the fully bound form of a widget config.
type ResolvedBinding struct {
	DataSource string           `json:"dataSource"`
	ChartType  widget.ChartType `json:"chartType"`
	Title      string           `json:"title"`

	Category  []Column `json:"category,omitempty"`
	Value     []Series `json:"value"`
	BreakBy   []Column `json:"breakBy,omitempty"`
	Secondary []Series `json:"secondary,omitempty"`
}

// Ready reports whether the binding can be rendered. A widget needs at
// least one resolvable value entry; until then the caller shows
// PlaceholderMessage.
func (b ResolvedBinding) Ready() bool { return len(b.Value) > 0 }

// StyleOptions is the per-widget styling overlay input.
type StyleOptions struct {
	Color string `json:"color,omitempty"`
}

// RenderableBinding is a styled copy of a ResolvedBinding.
type RenderableBinding struct {
	ResolvedBinding
	// Background carries the indicator theme color; empty for other charts.
	Background string `json:"background,omitempty"`
}

// ApplyStyle overlays styling onto a binding without mutating it. For
// indicator charts the color becomes the chart background; for everything
// else it is applied to each value series.
func ApplyStyle(b ResolvedBinding, opts StyleOptions) RenderableBinding {
	out := RenderableBinding{ResolvedBinding: b}
	out.Value = make([]Series, len(b.Value))
	copy(out.Value, b.Value)

	if opts.Color == "" {
		return out
	}
	if b.ChartType.IsIndicator() {
		out.Background = opts.Color
		return out
	}
	for i := range out.Value {
		out.Value[i].Color = opts.Color
	}
	return out
}
