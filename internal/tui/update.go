package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeSearch {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.eng.SetSearchTerm("")
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.eng.SetSearchTerm(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Filter):
		m.cycleFilter()

	case key.Matches(msg, keys.NextFilter):
		if n := len(m.eng.Options().Filters); n > 0 {
			m.filter = (m.filter + 1) % n
		}

	case key.Matches(msg, keys.Clear):
		m.eng.ClearAllFilters()

	case key.Matches(msg, keys.View):
		if err := m.eng.SetViewMode(m.view.State.ViewMode.Next()); err != nil {
			m.status = err.Error()
		}

	case key.Matches(msg, keys.Sort):
		n, _ := strconv.Atoi(msg.String())
		cols := engine.VisibleColumns(m.eng.Options().Columns)
		if n >= 1 && n <= len(cols) {
			m.eng.SetSort(cols[n-1].Key)
		}

	case key.Matches(msg, keys.Up):
		m.cursor = max(m.cursor-1, 0)
		return m, nil

	case key.Matches(msg, keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.view.Sorted)-1, 0))
		return m, nil

	case key.Matches(msg, keys.Detail):
		m.detail = !m.detail
		if row, ok := m.selectedRow(); ok && m.detail {
			m.dispatch(engine.ActionView, row)
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		if m.dispatch(engine.ActionDelete, row) {
			if err := m.reload(); err != nil {
				m.status = err.Error()
			}
		}
		return m, nil
	}

	m.refresh()
	return m, nil
}

// dispatch runs an engine action against row and reports whether it
// succeeded. Unavailable view actions are silently skipped.
func (m *Model) dispatch(action engine.Action, row types.Row) bool {
	if t, ok := m.src.(Targeter); ok {
		t.Target(row)
	}
	err := m.eng.Dispatch(action, row.Record)
	switch {
	case err == nil:
		return true
	case action == engine.ActionView:
		return false
	default:
		m.status = fmt.Sprintf("%s: %v", action, err)
		return false
	}
}

// cycleFilter advances the selected filter to its next value, wrapping
// through "all".
func (m *Model) cycleFilter() {
	filters := m.eng.Options().Filters
	if len(filters) == 0 {
		m.status = "no filters defined"
		return
	}
	f := filters[m.filter]
	values := append([]string{types.FilterAll}, filterValues(f, m.data)...)

	current := m.eng.State().FilterValues[f.Key]
	if current == "" {
		current = types.FilterAll
	}
	next := values[0]
	for i, v := range values {
		if v == current {
			next = values[(i+1)%len(values)]
			break
		}
	}
	m.eng.SetFilter(f.Key, next)
}

// filterValues lists the choices of f: its declared options, or the
// distinct values present in data in order of first appearance.
func filterValues(f types.FilterSpec, data []types.Record) []string {
	var out []string
	if len(f.Options) > 0 {
		for _, o := range f.Options {
			out = append(out, o.Value)
		}
		return out
	}
	seen := make(map[string]bool)
	for _, rec := range data {
		v := rec.Get(f.Key).String()
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
