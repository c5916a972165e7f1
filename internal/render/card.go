package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

const (
	gridCellWidth = 34
	laneMinWidth  = 26
	badgeWidth    = 10
	// frame is the horizontal space taken by a card border and padding.
	frame = 4
)

var (
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	laneStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Faint(true)
	badgeStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)
)

func init() {
	Register(string(types.ViewCard), writeCards)
	Register(string(types.ViewGrid), writeGrid)
	Register(string(types.ViewKanban), writeKanban)
}

// card renders one record as a bordered block of total width outer.
// Columns already shown as title or subtitle are skipped.
func card(rec types.Record, opts engine.Options, cols []types.ColumnSpec, outer int, rowID string) string {
	inner := outer - frame
	if inner < 8 {
		inner = 8
	}
	c := opts.Card(rec)

	badge := fit(c.Badge, badgeWidth)
	head := badgeStyle.Render(badge) + " " + titleStyle.Render(fit(c.Title, inner-lipgloss.Width(badge)-1))
	lines := []string{head}
	if c.Subtitle != "" {
		lines = append(lines, subtleStyle.Render(fit(c.Subtitle, inner)))
	}
	for _, col := range cols {
		if col.Key == opts.CardTitleKey || col.Key == opts.CardSubtitleKey {
			continue
		}
		lines = append(lines, fit(col.Label+": "+col.Cell(rec), inner))
	}
	if rowID != "" {
		lines = append(lines, subtleStyle.Render("#"+ShortID(rowID)))
	}
	return cardStyle.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func writeBlock(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}

func writeCards(w io.Writer, v engine.View, opts engine.Options, ro Options) error {
	if v.Empty() {
		return writeEmpty(w)
	}
	cols := columns(v, ro)
	start, end := ro.window(v)
	for n := start; n < end; n++ {
		if err := writeBlock(w, card(v.Sorted[n], opts, cols, ro.width(), ro.rowID(v.Indices[n]))); err != nil {
			return err
		}
	}
	return writeFooter(w, v, start, end)
}

func writeGrid(w io.Writer, v engine.View, opts engine.Options, ro Options) error {
	if v.Empty() {
		return writeEmpty(w)
	}
	perRow := ro.width() / gridCellWidth
	if perRow < 1 {
		perRow = 1
	}
	cellWidth := ro.width() / perRow

	start, end := ro.window(v)
	for row := start; row < end; row += perRow {
		last := min(row+perRow, end)
		cells := make([]string, 0, last-row)
		for n := row; n < last; n++ {
			cells = append(cells, card(v.Sorted[n], opts, v.CompactColumns, cellWidth, ro.rowID(v.Indices[n])))
		}
		if err := writeBlock(w, lipgloss.JoinHorizontal(lipgloss.Top, cells...)); err != nil {
			return err
		}
	}
	return writeFooter(w, v, start, end)
}

// laneTitle labels a lane with its value and card count.
func laneTitle(l engine.Lane) string {
	name := l.Value
	if name == "" {
		name = "(none)"
	}
	return fmt.Sprintf("%s (%d)", name, len(l.Records))
}

func writeKanban(w io.Writer, v engine.View, opts engine.Options, ro Options) error {
	if v.Empty() {
		return writeEmpty(w)
	}
	if len(v.Lanes) == 0 {
		return writeFooter(w, v, 0, len(v.Sorted))
	}
	laneWidth := max(ro.width()/len(v.Lanes), laneMinWidth)

	// Lanes are shown whole; only Limit applies.
	budget := len(v.Sorted)
	if ro.Limit > 0 {
		budget = min(ro.Limit, budget)
	}
	shown := 0
	lanes := make([]string, 0, len(v.Lanes))
	for _, l := range v.Lanes {
		blocks := []string{titleStyle.Render(fit(laneTitle(l), laneWidth))}
		for n, rec := range l.Records {
			if shown >= budget {
				break
			}
			blocks = append(blocks, card(rec, opts, nil, laneWidth, ro.rowID(l.Indices[n])))
			shown++
		}
		lanes = append(lanes, laneStyle.Width(laneWidth).Render(lipgloss.JoinVertical(lipgloss.Left, blocks...)))
	}
	if err := writeBlock(w, lipgloss.JoinHorizontal(lipgloss.Top, lanes...)); err != nil {
		return err
	}
	return writeFooter(w, v, 0, shown)
}
