// Package render writes a derived engine.View to a terminal or stream in
// one of the registered formats: a format per view mode plus JSON.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

// FormatJSON selects the machine-readable renderer.
const FormatJSON = "json"

// DefaultWidth is used when Options.Width is not set.
const DefaultWidth = 100

// Empty state lines.
const (
	EmptyTitle = "No data found"
	EmptyHint  = "Try adjusting your search or filters"
)

// Options tune a single render.
type Options struct {
	// Width is the terminal width available to card, grid and kanban.
	Width int
	// Offset skips the first sorted records; Limit caps how many are
	// written after that. Zero Limit writes the rest.
	Offset int
	Limit  int
	// Compact shows only the first visible columns.
	Compact bool
	// RowIDs maps source indices to store row IDs.
	RowIDs []string
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

// Func writes v using the table definition in opts.
type Func func(w io.Writer, v engine.View, opts engine.Options, ro Options) error

var registry = map[string]Func{}

// Register adds or replaces the renderer for format.
func Register(format string, fn Func) { registry[format] = fn }

// Formats lists the registered formats.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write renders v with the renderer registered for format.
func Write(format string, w io.Writer, v engine.View, opts engine.Options, ro Options) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("%w: output %q", types.ErrUnknownFormat, format)
	}
	return fn(w, v, opts, ro)
}

// ForView returns the format that matches the view mode of v, or FormatJSON
// when asJSON is set.
func ForView(v engine.View, asJSON bool) string {
	if asJSON {
		return FormatJSON
	}
	return string(v.State.ViewMode)
}

// ShortID abbreviates a row ID to its last eight characters, the random
// tail of a UUID v7.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// rowID returns the store ID of source index i, or "".
func (o Options) rowID(i int) string {
	if i < 0 || i >= len(o.RowIDs) {
		return ""
	}
	return o.RowIDs[i]
}

// window returns the half-open range of sorted positions to write.
func (o Options) window(v engine.View) (int, int) {
	n := len(v.Sorted)
	start := min(max(o.Offset, 0), n)
	end := n
	if o.Limit > 0 && start+o.Limit < n {
		end = start + o.Limit
	}
	return start, end
}

// columns picks the column set for ro.
func columns(v engine.View, ro Options) []types.ColumnSpec {
	if ro.Compact {
		return v.CompactColumns
	}
	return v.VisibleColumns
}

func writeEmpty(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", EmptyTitle, EmptyHint)
	return err
}

func writeFooter(w io.Writer, v engine.View, start, end int) error {
	line := v.Summary()
	if start < end && (start > 0 || end < len(v.Sorted)) {
		line += fmt.Sprintf(" (rows %d-%d)", start+1, end)
	}
	if n := v.ActiveFilterCount; n > 0 {
		line += fmt.Sprintf(", %d active filter(s)", n)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// cellSpaces flattens characters that would break a cell's line or column.
var cellSpaces = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// fit flattens s onto one line and truncates it to width display cells.
func fit(s string, width int) string {
	s = cellSpaces.Replace(s)
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
