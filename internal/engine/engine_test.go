package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

func TestNewDefaults(t *testing.T) {
	tests := []struct {
		name        string
		defaultView types.ViewMode
		want        types.ViewMode
	}{
		{name: "empty default is table", defaultView: "", want: types.ViewTable},
		{name: "card default kept", defaultView: types.ViewCard, want: types.ViewCard},
		{name: "unknown default falls back to table", defaultView: "timeline", want: types.ViewTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := New(Options{DefaultView: tt.defaultView}).State()
			assert.Equal(t, tt.want, st.ViewMode)
			assert.Equal(t, "", st.SearchTerm)
			assert.Empty(t, st.FilterValues)
			assert.Equal(t, "", st.SortKey)
			assert.Equal(t, types.SortAsc, st.SortDirection)
		})
	}
}

func TestSetSortScenario(t *testing.T) {
	data := amounts()
	e := New(Options{})
	e.SetSearchTerm("")

	e.SetSort("amount")
	got := e.ComputeSorted(e.ComputeFiltered(data))
	assert.Equal(t, []string{"2", "3", "1"}, field(got, "id"), "ascending keeps id2 before id3 on the tie")

	e.SetSort("amount")
	got = e.ComputeSorted(e.ComputeFiltered(data))
	assert.Equal(t, []string{"1", "2", "3"}, field(got, "id"), "descending keeps id2 before id3 on the tie")
}

func TestSetSortCycle(t *testing.T) {
	e := New(Options{})

	var dirs []types.SortDirection
	for i := 0; i < 3; i++ {
		e.SetSort("amount")
		dirs = append(dirs, e.State().SortDirection)
	}
	assert.Equal(t, []types.SortDirection{types.SortAsc, types.SortDesc, types.SortAsc}, dirs)
}

func TestSetSortNewKeyResetsDirection(t *testing.T) {
	e := New(Options{})
	e.SetSort("amount")
	e.SetSort("amount")
	require.Equal(t, types.SortDesc, e.State().SortDirection)

	e.SetSort("name")
	st := e.State()
	assert.Equal(t, "name", st.SortKey)
	assert.Equal(t, types.SortAsc, st.SortDirection)
}

func TestSetSortIgnoresNonSortableColumn(t *testing.T) {
	e := New(Options{Columns: employeeColumns()})
	e.SetSort("name")

	e.SetSort("status")
	st := e.State()
	assert.Equal(t, "name", st.SortKey, "non-sortable column leaves the sort untouched")
	assert.Equal(t, types.SortAsc, st.SortDirection)

	e.SetSort("")
	assert.Equal(t, "name", e.State().SortKey)
}

func TestSetFilterAllIsInactive(t *testing.T) {
	data := employees()
	e := New(Options{})

	e.SetFilter("dept", "all")
	assert.Equal(t, data, e.ComputeFiltered(data))
	assert.Empty(t, e.State().FilterValues)

	e.SetFilter("department", "Sales")
	require.Len(t, e.ComputeFiltered(data), 2)

	e.SetFilter("department", "all")
	assert.Equal(t, data, e.ComputeFiltered(data), "all removes a previously active filter")

	e.SetFilter("department", "Sales")
	e.SetFilter("department", "")
	assert.Equal(t, data, e.ComputeFiltered(data), "empty removes a previously active filter")
}

func TestClearAllFilters(t *testing.T) {
	e := New(Options{})
	e.SetSearchTerm("mumbai")
	e.SetSort("name")
	e.SetFilter("department", "Technology")
	e.SetFilter("status", "Active")

	e.ClearAllFilters()

	st := e.State()
	assert.Empty(t, st.FilterValues)
	assert.Equal(t, "mumbai", st.SearchTerm)
	assert.Equal(t, "name", st.SortKey)
}

func TestSetViewMode(t *testing.T) {
	data := employees()
	e := New(Options{})
	e.SetSort("name")
	before := e.ComputeSorted(e.ComputeFiltered(data))

	for _, m := range []types.ViewMode{types.ViewKanban, types.ViewTable, types.ViewGrid, types.ViewCard} {
		require.NoError(t, e.SetViewMode(m))
		assert.Equal(t, m, e.State().ViewMode)
		assert.Equal(t, before, e.ComputeSorted(e.ComputeFiltered(data)), "view mode does not change results")
	}

	err := e.SetViewMode("timeline")
	assert.ErrorIs(t, err, types.ErrInvalidViewMode)
	assert.Equal(t, types.ViewCard, e.State().ViewMode)
}

func TestStateIsCopied(t *testing.T) {
	e := New(Options{})
	e.SetFilter("department", "HR")

	st := e.State()
	st.FilterValues["department"] = "Sales"
	st.FilterValues["status"] = "Active"

	assert.Equal(t, map[string]string{"department": "HR"}, e.State().FilterValues)
}

func TestDispatch(t *testing.T) {
	boom := assert.AnError
	var viewed, deleted types.Record
	added := 0

	e := New(Options{Callbacks: Callbacks{
		OnAdd:    func() error { added++; return nil },
		OnView:   func(rec types.Record) error { viewed = rec; return nil },
		OnDelete: func(rec types.Record) error { deleted = rec; return boom },
	}})
	rec := employees()[2]

	require.NoError(t, e.Dispatch(ActionAdd, nil))
	assert.Equal(t, 1, added)

	require.NoError(t, e.Dispatch(ActionView, rec))
	assert.Equal(t, rec, viewed)

	err := e.Dispatch(ActionDelete, rec)
	assert.Same(t, boom, err, "handler errors propagate unchanged")
	assert.Equal(t, rec, deleted)

	err = e.Dispatch(ActionEdit, rec)
	assert.ErrorIs(t, err, types.ErrActionUnavailable)

	assert.Equal(t, []Action{ActionAdd, ActionView, ActionDelete}, e.Options().Callbacks.Available())
}
