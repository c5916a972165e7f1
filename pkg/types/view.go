package types

import "fmt"

// ViewMode is the presentation layout applied to the derived data.
type ViewMode string

// View modes. Any mode is reachable from any other.
const (
	ViewTable  ViewMode = "table"
	ViewCard   ViewMode = "card"
	ViewGrid   ViewMode = "grid"
	ViewKanban ViewMode = "kanban"
)

// ViewModes lists the view modes in cycling order.
var ViewModes = []ViewMode{ViewTable, ViewCard, ViewGrid, ViewKanban}

// ParseViewMode validates s as a view mode. An empty string yields ViewTable.
func ParseViewMode(s string) (ViewMode, error) {
	if s == "" {
		return ViewTable, nil
	}
	m := ViewMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
	return m, nil
}

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	for _, known := range ViewModes {
		if m == known {
			return true
		}
	}
	return false
}

// Next returns the mode after m in ViewModes, wrapping around.
func (m ViewMode) Next() ViewMode {
	for i, known := range ViewModes {
		if m == known {
			return ViewModes[(i+1)%len(ViewModes)]
		}
	}
	return ViewTable
}

// SortDirection is the sort order applied to the sort key.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Toggle flips the direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}
