package engine

import (
	"maps"
	"sort"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// State is the user-controlled part of a table: search, filters, sort and
// view mode. It is mutated only through Engine operations.
type State struct {
	SearchTerm    string              `json:"search_term"`
	FilterValues  map[string]string   `json:"filter_values"`
	SortKey       string              `json:"sort_key,omitempty"`
	SortDirection types.SortDirection `json:"sort_direction"`
	ViewMode      types.ViewMode      `json:"view_mode"`
}

// NewState returns the initial state for a table showing defaultView.
func NewState(defaultView types.ViewMode) State {
	if !defaultView.Valid() {
		defaultView = types.ViewTable
	}
	return State{
		FilterValues:  map[string]string{},
		SortDirection: types.SortAsc,
		ViewMode:      defaultView,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.FilterValues = maps.Clone(s.FilterValues)
	if out.FilterValues == nil {
		out.FilterValues = map[string]string{}
	}
	return out
}

// ActiveFilters returns the filter keys that constrain results, sorted.
func (s State) ActiveFilters() []string {
	keys := make([]string, 0, len(s.FilterValues))
	for k, v := range s.FilterValues {
		if types.IsActiveFilterValue(v) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// ActiveFilterCount returns the number of active filters.
func (s State) ActiveFilterCount() int {
	return len(s.ActiveFilters())
}
