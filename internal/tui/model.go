// Package tui is the interactive dataset browser: a bubbletea program that
// feeds key presses into a table engine and redraws the derived view.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/internal/render"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

// chrome is the number of screen lines used around the body.
const chrome = 9

type mode int

const (
	modeBrowse mode = iota
	modeSearch
)

// Source supplies the rows shown by the browser.
type Source interface {
	Fetch() ([]types.Row, error)
}

// Targeter is implemented by sources whose action handlers act on a stored
// row. The browser calls Target with the row under the cursor before each
// dispatch.
type Targeter interface {
	Target(row types.Row)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cursorStyle = lipgloss.NewStyle().Bold(true)
)

// Model is the browser state. The engine owns search, filter, sort and view
// mode; the model owns cursor, input focus and screen size.
type Model struct {
	title string
	eng   *engine.Engine
	src   Source

	rows []types.Row
	data []types.Record
	view engine.View

	mode   mode
	search textinput.Model
	filter int
	cursor int
	detail bool
	width  int
	height int
	status string
}

// New loads src and returns a browser over it.
func New(title string, eng *engine.Engine, src Source) (Model, error) {
	ti := textinput.New()
	ti.Placeholder = eng.Options().SearchPlaceholder
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.SetValue(eng.State().SearchTerm)

	m := Model{title: title, eng: eng, src: src, search: ti}
	if err := m.reload(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Run starts the program on the terminal and blocks until it quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// State returns the engine state, for callers inspecting the final model.
func (m Model) State() engine.State { return m.eng.State() }

// Selected returns the record under the cursor.
func (m Model) Selected() (types.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Sorted) {
		return nil, false
	}
	return m.view.Sorted[m.cursor], true
}

// selectedRow returns the stored row under the cursor, mapped back through
// the view's source indices.
func (m Model) selectedRow() (types.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Indices) {
		return types.Row{}, false
	}
	i := m.view.Indices[m.cursor]
	if i < 0 || i >= len(m.rows) {
		return types.Row{}, false
	}
	return m.rows[i], true
}

func (m *Model) reload() error {
	rows, err := m.src.Fetch()
	if err != nil {
		return fmt.Errorf("fetch rows: %w", err)
	}
	m.rows = rows
	m.data = make([]types.Record, len(rows))
	for i, r := range rows {
		m.data[i] = r.Record
	}
	m.refresh()
	return nil
}

// refresh re-derives the view and keeps the cursor in range.
func (m *Model) refresh() {
	m.view = m.eng.Derive(m.data)
	m.cursor = min(m.cursor, len(m.view.Sorted)-1)
	m.cursor = max(m.cursor, 0)
}

func (m *Model) rowIDs() []string {
	ids := make([]string, len(m.rows))
	for i, r := range m.rows {
		ids[i] = r.ID
	}
	return ids
}

// pageSize is the number of records that fit the body.
func (m Model) pageSize() int {
	if m.height == 0 {
		return 0
	}
	lines := max(m.height-chrome, 1)
	switch m.view.State.ViewMode {
	case types.ViewTable:
		return max(lines-4, 1)
	case types.ViewKanban:
		return 0
	default:
		return max(lines/5, 1)
	}
}

func (m Model) body() string {
	opts := render.Options{Width: m.width, Limit: m.pageSize(), RowIDs: m.rowIDs()}
	if opts.Limit > 0 {
		opts.Offset = m.cursor - m.cursor%opts.Limit
	}
	var sb strings.Builder
	if err := render.Write(render.ForView(m.view, false), &sb, m.view, m.eng.Options(), opts); err != nil {
		return errorStyle.Render(err.Error())
	}
	return sb.String()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.title))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  [%s]", m.view.State.ViewMode)))
	b.WriteString("\n")

	if m.mode == modeSearch {
		b.WriteString(m.search.View())
	} else if term := m.view.State.SearchTerm; term != "" {
		b.WriteString("Search: " + term)
	} else {
		b.WriteString(mutedStyle.Render("Search: " + m.eng.Options().SearchPlaceholder))
	}
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	b.WriteString(m.body())
	b.WriteString("\n")

	if rec, ok := m.Selected(); ok {
		c := m.eng.Options().Card(rec)
		b.WriteString(cursorStyle.Render(fmt.Sprintf("> %s", c.Title)))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d", m.cursor+1, len(m.view.Sorted))))
		b.WriteString("\n")
		if m.detail {
			b.WriteString(m.detailPane(rec))
		}
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) filterLine() string {
	filters := m.eng.Options().Filters
	if len(filters) == 0 {
		return mutedStyle.Render("No filters")
	}
	f := filters[m.filter]
	value := m.view.State.FilterValues[f.Key]
	if value == "" {
		value = types.FilterAll
	}
	line := fmt.Sprintf("Filter %s: %s", f.Label, value)
	if n := m.view.ActiveFilterCount; n > 0 {
		line += fmt.Sprintf("  (%d active)", n)
	}
	return line
}

func (m Model) detailPane(rec types.Record) string {
	var b strings.Builder
	for _, c := range m.eng.Options().Columns {
		fmt.Fprintf(&b, "  %s: %s\n", c.Label, c.Cell(rec))
	}
	return b.String()
}

func (m Model) helpLine() string {
	var parts []string
	for _, k := range keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return mutedStyle.Render(strings.Join(parts, "  "))
}
