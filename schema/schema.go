package schema

import "strings"

// ============================================================================
// SCHEMA REGISTRY — Static catalog of tables, fields, and field kinds
// ============================================================================
// The registry is loaded once at startup and never mutated afterwards. The
// gateway uses it to build AI prompts, the validator uses it to repair and
// check configs, and the resolver uses it to bind string references to
// concrete columns. A missing table or field is a normal outcome (NotFound),
// never an error: AI output routinely names fields that don't exist.
//
// The one permitted startup mutation is the datasource title override,
// applied uniformly across every table before the registry is shared.
// ============================================================================

// FieldKind classifies a field for prompt building and repair rules.
type FieldKind string

const (
	KindText    FieldKind = "text"
	KindNumeric FieldKind = "numeric"
	KindDate    FieldKind = "date"
)

// DateLevels are the granularity levels a date field exposes, coarsest first.
var DateLevels = []string{"Years", "Quarters", "Months", "Weeks", "Days"}

// Field describes a single column of a table.
type Field struct {
	Table string    `json:"table" koanf:"-"`
	Name  string    `json:"name" koanf:"name"`
	Kind  FieldKind `json:"kind" koanf:"kind"`

	// Granularities lists the valid date levels. Empty for non-date fields;
	// date fields default to all of DateLevels.
	Granularities []string `json:"granularities,omitempty" koanf:"granularities"`
}

// IsDate reports whether the field is a date dimension.
func (f Field) IsDate() bool { return f.Kind == KindDate }

// HasGranularity reports whether level is valid for this field.
func (f Field) HasGranularity(level string) bool {
	for _, g := range f.Granularities {
		if g == level {
			return true
		}
	}
	return false
}

// Table is an immutable group of fields sharing one physical source.
type Table struct {
	// Name is the reference name used in DM. paths, e.g.
	// "vitalflux_patients_csv".
	Name string `json:"name" koanf:"name"`

	// Display is the physical source name, e.g. "vitalflux_patients.csv".
	// Falls back to Name when empty.
	Display string `json:"display,omitempty" koanf:"display"`

	Fields []Field `json:"fields" koanf:"fields"`
}

// DisplayName returns the physical source name for expression building.
func (t Table) DisplayName() string {
	if t.Display != "" {
		return t.Display
	}
	return t.Name
}

// Registry is the immutable table/field catalog.
type Registry struct {
	source string
	tables []Table
	index  map[string]int // table name → position in tables
}

// NewRegistry builds a registry from a datasource title and table list.
// Each field is stamped with its owning table name; date fields with no
// explicit granularity list get the full set of DateLevels.
func NewRegistry(source string, tables []Table) *Registry {
	r := &Registry{
		source: source,
		tables: make([]Table, len(tables)),
		index:  make(map[string]int, len(tables)),
	}
	for i, t := range tables {
		fields := make([]Field, len(t.Fields))
		for j, f := range t.Fields {
			f.Table = t.Name
			if f.IsDate() && len(f.Granularities) == 0 {
				f.Granularities = DateLevels
			}
			fields[j] = f
		}
		t.Fields = fields
		r.tables[i] = t
		r.index[t.Name] = i
	}
	return r
}

// Source returns the datasource title shared by every table.
func (r *Registry) Source() string { return r.source }

// Tables returns the catalog in declaration order. Callers must treat the
// result as read-only.
func (r *Registry) Tables() []Table { return r.tables }

// LookupTable finds a table by reference name.
func (r *Registry) LookupTable(name string) (Table, bool) {
	i, ok := r.index[name]
	if !ok {
		return Table{}, false
	}
	return r.tables[i], true
}

// LookupField finds a field within a table.
func (r *Registry) LookupField(table, name string) (Field, bool) {
	t, ok := r.LookupTable(table)
	if !ok {
		return Field{}, false
	}
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// DefaultGranularity returns the level an untyped date reference widens to:
// Months for fields literally named "month", Days otherwise. Returns ""
// for unknown or non-date fields.
func (r *Registry) DefaultGranularity(table, name string) string {
	f, ok := r.LookupField(table, name)
	if !ok || !f.IsDate() {
		return ""
	}
	if strings.EqualFold(f.Name, "month") {
		return "Months"
	}
	return "Days"
}

// OverrideSource applies the single permitted startup override: substitute
// the datasource title uniformly across all tables. Empty titles are
// ignored. Must be called before the registry is shared.
func (r *Registry) OverrideSource(title string) {
	if title == "" {
		return
	}
	r.source = title
}

// Expression returns the platform column expression for a field, e.g.
// "[vitalflux_patients.csv.program]". Date fields carry the calendar tag.
func (r *Registry) Expression(f Field) string {
	t, ok := r.LookupTable(f.Table)
	if !ok {
		return "[" + f.Table + "." + f.Name + "]"
	}
	if f.IsDate() {
		return "[" + t.DisplayName() + "." + f.Name + " (Calendar)]"
	}
	return "[" + t.DisplayName() + "." + f.Name + "]"
}
