package engine

import (
	"github.com/mesh-intelligence/payroll/pkg/types"
)

// DefaultLaneKey is the field that groups records into kanban lanes when
// Options.LaneKey is empty.
const DefaultLaneKey = "status"

// Options are the caller-supplied, immutable inputs of a table.
type Options struct {
	Columns           []types.ColumnSpec
	Filters           []types.FilterSpec
	SearchPlaceholder string
	DefaultView       types.ViewMode

	// Card keys are consulted by presentation only, never by filtering or
	// sorting.
	CardTitleKey    string
	CardSubtitleKey string
	CardImageKey    string
	LaneKey         string

	Callbacks Callbacks
}

// Column returns the column declared for key.
func (o Options) Column(key string) (types.ColumnSpec, bool) {
	for _, c := range o.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return types.ColumnSpec{}, false
}

func (o Options) laneKey() string {
	if o.LaneKey == "" {
		return DefaultLaneKey
	}
	return o.LaneKey
}

// Engine owns the State of one table instance.
type Engine struct {
	opts  Options
	state State
}

// New creates an engine with the caller's options and a fresh state in
// opts.DefaultView.
func New(opts Options) *Engine {
	return &Engine{
		opts:  opts,
		state: NewState(opts.DefaultView),
	}
}

// Options returns the options the engine was created with.
func (e *Engine) Options() Options { return e.opts }

// State returns a copy of the current state.
func (e *Engine) State() State { return e.state.Clone() }

// SetSearchTerm replaces the search term. An empty term disables text
// search.
func (e *Engine) SetSearchTerm(term string) {
	e.state.SearchTerm = term
}

// SetFilter sets the value of one filter. "all" and "" remove the filter
// from the active set.
func (e *Engine) SetFilter(key, value string) {
	if !types.IsActiveFilterValue(value) {
		delete(e.state.FilterValues, key)
		return
	}
	e.state.FilterValues[key] = value
}

// ClearAllFilters resets every filter. Search term and sort are untouched.
func (e *Engine) ClearAllFilters() {
	e.state.FilterValues = map[string]string{}
}

// SetSort requests ordering by key. Repeating the current key toggles the
// direction; a new key sorts ascending. Columns declared non-sortable and
// the empty key are ignored.
func (e *Engine) SetSort(key string) {
	if key == "" {
		return
	}
	if col, ok := e.opts.Column(key); ok && !col.IsSortable() {
		return
	}
	if key == e.state.SortKey {
		e.state.SortDirection = e.state.SortDirection.Toggle()
		return
	}
	e.state.SortKey = key
	e.state.SortDirection = types.SortAsc
}

// SetViewMode switches the presentation layout. It has no effect on
// filtering or sorting. Unknown modes return ErrInvalidViewMode and leave
// the state unchanged.
func (e *Engine) SetViewMode(mode types.ViewMode) error {
	if !mode.Valid() {
		return types.ErrInvalidViewMode
	}
	e.state.ViewMode = mode
	return nil
}

// ComputeFiltered returns the records of data that match the current search
// and filters, in source order.
func (e *Engine) ComputeFiltered(data []types.Record) []types.Record {
	return pick(data, Filter(e.state, data))
}

// ComputeSorted orders filtered by the current sort key and direction.
func (e *Engine) ComputeSorted(filtered []types.Record) []types.Record {
	return pick(filtered, Sort(e.state, filtered, identity(len(filtered))))
}

// Derive computes the full view of data for the current state.
func (e *Engine) Derive(data []types.Record) View {
	return Derive(e.state, e.opts, data)
}
