package widget

// ============================================================================
// WIDGET CONFIG — The contract between the AI gateway and the dashboard
// ============================================================================
// A Config is created once from model output, normalized by Validate, and
// then held immutably for the widget's on-screen lifetime. Colors and
// themes are rendering-time overlays (resolve.ApplyStyle), never config
// mutations.
// ============================================================================

// ChartType enumerates the chart kinds the rendering collaborator supports.
type ChartType string

const (
	ChartLine      ChartType = "line"
	ChartBar       ChartType = "bar"
	ChartColumn    ChartType = "column"
	ChartPie       ChartType = "pie"
	ChartIndicator ChartType = "indicator"
)

// ChartTypes lists the allowed chart types in display order.
var ChartTypes = []ChartType{ChartLine, ChartBar, ChartColumn, ChartPie, ChartIndicator}

// Valid reports whether t is in the allowed set.
func (t ChartType) Valid() bool {
	for _, ct := range ChartTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// IsIndicator reports whether t renders as a single-value indicator.
// Indicators take secondary values and a background theme instead of
// per-series colors.
func (t ChartType) IsIndicator() bool { return t == ChartIndicator }

// DataOptions holds the string references driving a chart, exactly as the
// model emitted them (after repair). All entries must resolve to fields of
// one table.
type DataOptions struct {
	Category  []string `json:"category,omitempty"`
	Value     []string `json:"value"`
	BreakBy   []string `json:"breakBy,omitempty"`
	Secondary []string `json:"secondary,omitempty"`
}

// Config describes one AI-generated widget.
type Config struct {
	ChartType   ChartType   `json:"chartType"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	DataOptions DataOptions `json:"dataOptions"`
}
