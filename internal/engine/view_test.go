package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

func TestMatchRate(t *testing.T) {
	tests := []struct {
		part, total int
		want        int
	}{
		{part: 0, total: 0, want: 0},
		{part: 3, total: 3, want: 100},
		{part: 1, total: 3, want: 33},
		{part: 2, total: 3, want: 67},
		{part: 1, total: 8, want: 13},
		{part: 0, total: 5, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchRate(tt.part, tt.total), "%d/%d", tt.part, tt.total)
	}
}

func TestDeriveStats(t *testing.T) {
	opts := Options{Columns: employeeColumns()}

	t.Run("empty collection reports zero match rate", func(t *testing.T) {
		v := Derive(NewState(types.ViewTable), opts, nil)
		assert.Equal(t, Stats{Total: 0, Filtered: 0, MatchRate: 0, Columns: 6}, v.Stats)
		assert.True(t, v.Empty())
		assert.Equal(t, "Showing 0 of 0 results", v.Summary())
	})

	t.Run("filtered collection", func(t *testing.T) {
		st := NewState(types.ViewTable)
		st.FilterValues["department"] = "Sales"
		st.FilterValues["status"] = "all"

		v := Derive(st, opts, employees())
		assert.Equal(t, Stats{Total: 6, Filtered: 2, MatchRate: 33, Columns: 6}, v.Stats)
		assert.Equal(t, 1, v.ActiveFilterCount)
		assert.False(t, v.Empty())
		assert.Equal(t, "Showing 2 of 6 results", v.Summary())
	})
}

func TestDeriveColumns(t *testing.T) {
	v := Derive(NewState(types.ViewTable), Options{Columns: employeeColumns()}, employees())

	var visible []string
	for _, c := range v.VisibleColumns {
		visible = append(visible, c.Key)
	}
	assert.Equal(t, []string{"empId", "name", "department", "grossCTC", "status"}, visible)

	require.Len(t, v.CompactColumns, 2)
	assert.Equal(t, "empId", v.CompactColumns[0].Key)
	assert.Equal(t, "name", v.CompactColumns[1].Key)
}

func TestDeriveLanes(t *testing.T) {
	t.Run("lanes follow first appearance in the source", func(t *testing.T) {
		st := NewState(types.ViewKanban)
		st.SortKey = "name"

		v := Derive(st, Options{}, employees())
		require.Len(t, v.Lanes, 2)
		assert.Equal(t, "Active", v.Lanes[0].Value)
		assert.Equal(t, "Inactive", v.Lanes[1].Value)
		assert.Equal(t,
			[]string{"John Smith", "Michael Chen", "Priya Sharma", "Rajesh Kumar", "Sarah Wilson"},
			field(v.Lanes[0].Records, "name"), "lane cards are in sorted order")
		assert.Equal(t, []int{5}, v.Lanes[1].Indices)
	})

	t.Run("filtered-out lanes stay present and empty", func(t *testing.T) {
		st := NewState(types.ViewKanban)
		st.FilterValues["status"] = "Inactive"

		v := Derive(st, Options{}, employees())
		require.Len(t, v.Lanes, 2)
		assert.Empty(t, v.Lanes[0].Records)
		assert.Len(t, v.Lanes[1].Records, 1)
	})

	t.Run("custom lane key and blank lane", func(t *testing.T) {
		data := []types.Record{
			{"stage": str("draft")},
			{},
			{"stage": str("paid")},
			{"stage": str("draft")},
		}
		v := Derive(NewState(types.ViewKanban), Options{LaneKey: "stage"}, data)
		require.Len(t, v.Lanes, 3)
		assert.Equal(t, "draft", v.Lanes[0].Value)
		assert.Equal(t, []int{0, 3}, v.Lanes[0].Indices)
		assert.Equal(t, "", v.Lanes[1].Value)
		assert.Equal(t, "paid", v.Lanes[2].Value)
	})
}

func TestCard(t *testing.T) {
	cols := employeeColumns()
	rec := employees()[0]

	tests := []struct {
		name string
		opts Options
		rec  types.Record
		want Card
	}{
		{
			name: "card keys",
			opts: Options{Columns: cols, CardTitleKey: "name", CardSubtitleKey: "designation", CardImageKey: "empId"},
			rec:  rec,
			want: Card{Title: "John Smith", Subtitle: "Software Engineer", Badge: "E1001"},
		},
		{
			name: "title and badge fall back to first column",
			opts: Options{Columns: cols},
			rec:  rec,
			want: Card{Title: "E1001", Badge: "E"},
		},
		{
			name: "blank title key value falls back",
			opts: Options{Columns: cols, CardTitleKey: "nickname", CardImageKey: "photo"},
			rec:  rec,
			want: Card{Title: "E1001", Badge: "E"},
		},
		{
			name: "nothing to show",
			opts: Options{Columns: cols},
			rec:  types.Record{},
			want: Card{Title: "Untitled", Badge: "?"},
		},
		{
			name: "no columns",
			opts: Options{},
			rec:  rec,
			want: Card{Title: "Untitled", Badge: "?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Card(tt.rec))
		})
	}
}

func TestAggregates(t *testing.T) {
	data := employees()

	assert.Equal(t, 5, CountWhere(data, "status", "Active"))
	assert.Equal(t, 3, Distinct(data, "department"))
	assert.Equal(t, 8200000.0, Sum(data, "grossCTC"))
	assert.Equal(t, 84, Mean(data, "progress"))
	assert.Equal(t, 0, Mean(nil, "progress"))
	assert.Equal(t, 0.0, Sum(data, "name"), "strings do not add up")
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Value
		want int
	}{
		{name: "numbers numerically", a: num(9), b: num(10), want: -1},
		{name: "equal numbers", a: num(5), b: num(5), want: 0},
		{name: "strings case-insensitively", a: str("al"), b: str("Bob"), want: -1},
		{name: "equal ignoring case", a: str("SALES"), b: str("sales"), want: 0},
		{name: "number against string falls back to text", a: num(10), b: str("9"), want: -1},
		{name: "numeric-looking strings compare as text", a: str("10"), b: str("9"), want: -1},
		{name: "number against its own text is equal", a: num(9), b: str("9"), want: 0},
		{name: "null sorts before text", a: types.Null, b: str("a"), want: -1},
		{name: "bools compare as text", a: types.NewBool(true), b: types.NewBool(false), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.a, tt.b)
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}
