package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

// maxCellWidth bounds table cells.
const maxCellWidth = 40

func init() {
	Register(string(types.ViewTable), writeTable)
}

// sortMarker decorates the header of the sorted column.
func sortMarker(s engine.State, key string) string {
	if s.SortKey != key {
		return ""
	}
	if s.SortDirection == types.SortDesc {
		return " ↓"
	}
	return " ↑"
}

func writeTable(w io.Writer, v engine.View, _ engine.Options, ro Options) error {
	if v.Empty() {
		return writeEmpty(w)
	}
	cols := columns(v, ro)
	withIDs := len(ro.RowIDs) > 0

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	var header, rule []string
	if withIDs {
		header = append(header, "ID")
		rule = append(rule, "--")
	}
	for _, c := range cols {
		label := strings.ToUpper(c.Label) + sortMarker(v.State, c.Key)
		header = append(header, label)
		rule = append(rule, strings.Repeat("-", len([]rune(label))))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))

	start, end := ro.window(v)
	for n := start; n < end; n++ {
		rec := v.Sorted[n]
		var cells []string
		if withIDs {
			cells = append(cells, ShortID(ro.rowID(v.Indices[n])))
		}
		for _, c := range cols {
			cells = append(cells, fit(c.Cell(rec), maxCellWidth))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return writeFooter(w, v, start, end)
}
