package types

// RenderFunc maps a field value and its record to display text. Render
// functions are pure and never consulted by search, filter or sort.
type RenderFunc func(v Value, rec Record) string

// ColumnSpec describes how one field of a Record is labeled, sorted and
// rendered.
type ColumnSpec struct {
	Key          string     `yaml:"key" json:"key"`
	Label        string     `yaml:"label" json:"label"`
	Sortable     *bool      `yaml:"sortable,omitempty" json:"sortable,omitempty"`
	MobileHidden bool       `yaml:"mobile_hidden,omitempty" json:"mobile_hidden,omitempty"`
	Format       string     `yaml:"format,omitempty" json:"format,omitempty"`
	Render       RenderFunc `yaml:"-" json:"-"`
}

// IsSortable reports whether the column accepts sort requests. Columns are
// sortable unless explicitly marked otherwise.
func (c ColumnSpec) IsSortable() bool {
	return c.Sortable == nil || *c.Sortable
}

// Cell returns the display text for this column of rec. Missing fields
// render blank.
func (c ColumnSpec) Cell(rec Record) string {
	v := rec.Get(c.Key)
	if c.Render != nil {
		return c.Render(v, rec)
	}
	return v.String()
}

// FilterKind selects the input control of a filter.
type FilterKind string

// Filter kinds.
const (
	FilterSelect FilterKind = "select"
	FilterText   FilterKind = "text"
)

// FilterOption is one selectable value of a select filter.
type FilterOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// FilterSpec describes one selectable constraint exposed to the user.
type FilterSpec struct {
	Key     string         `yaml:"key" json:"key"`
	Label   string         `yaml:"label" json:"label"`
	Kind    FilterKind     `yaml:"kind" json:"kind"`
	Options []FilterOption `yaml:"options,omitempty" json:"options,omitempty"`
}

// FilterAll is the sentinel filter value meaning "no constraint".
const FilterAll = "all"

// IsActiveFilterValue reports whether a filter value constrains results.
// Empty and FilterAll are inactive.
func IsActiveFilterValue(value string) bool {
	return value != "" && value != FilterAll
}
