package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

func TestFilterIdentity(t *testing.T) {
	collections := map[string][]types.Record{
		"empty":     {},
		"amounts":   amounts(),
		"employees": employees(),
		"sparse":    {{"a": num(1)}, {}, {"b": str("x")}},
	}

	for name, data := range collections {
		t.Run(name, func(t *testing.T) {
			e := New(Options{})
			got := e.ComputeFiltered(data)
			assert.Equal(t, data, got)
			assert.Equal(t, data, e.ComputeSorted(got), "no sort key keeps source order")
		})
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "contact substring", term: "9876543212", want: []string{"T1001"}},
		{name: "case-insensitive across fields", term: "SALES", want: []string{"T1001", "E1004"}},
		{name: "matches location", term: "mumbai", want: []string{"E1001", "E1003"}},
		{name: "matches raw numbers not rendered text", term: "1500000", want: []string{"E1002"}},
		{name: "rendered lakh text is not searchable", term: "15.0L", want: []string{}},
		{name: "no match", term: "zzz", want: []string{}},
		{name: "empty term matches all", term: "", want: []string{"E1001", "E1002", "T1001", "E1003", "E1004", "E1005"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Options{})
			e.SetSearchTerm(tt.term)
			assert.Equal(t, tt.want, field(e.ComputeFiltered(employees()), "empId"))
		})
	}
}

func TestSearchIgnoresAbsentFields(t *testing.T) {
	data := []types.Record{
		{"name": str("al")},
		{"name": str("Bob"), "manager": types.Null},
	}
	e := New(Options{})
	e.SetSearchTerm("null")
	assert.Empty(t, e.ComputeFiltered(data))

	e.SetSearchTerm("undefined")
	assert.Empty(t, e.ComputeFiltered(data))
}

func TestFilterExactMatch(t *testing.T) {
	tests := []struct {
		name    string
		filters map[string]string
		want    []string
	}{
		{name: "single select", filters: map[string]string{"department": "Sales"}, want: []string{"T1001", "E1004"}},
		{name: "case-sensitive", filters: map[string]string{"department": "sales"}, want: []string{}},
		{name: "numbers compare by string form", filters: map[string]string{"grossCTC": "800000"}, want: []string{"T1001"}},
		{name: "filters are ANDed", filters: map[string]string{"department": "Technology", "location": "Mumbai"}, want: []string{"E1001", "E1003"}},
		{name: "absent field never matches", filters: map[string]string{"missing": "x"}, want: []string{}},
		{name: "all is not a literal", filters: map[string]string{"department": "all", "status": "Inactive"}, want: []string{"E1005"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Options{})
			for k, v := range tt.filters {
				e.SetFilter(k, v)
			}
			assert.Equal(t, tt.want, field(e.ComputeFiltered(employees()), "empId"))
		})
	}
}

func TestFilterProperty(t *testing.T) {
	data := employees()
	for _, key := range []string{"department", "location", "status", "grossCTC"} {
		for _, rec := range data {
			value := rec.Get(key).String()
			e := New(Options{})
			e.SetFilter(key, value)

			got := e.ComputeFiltered(data)
			require.NotEmpty(t, got)
			for _, r := range got {
				assert.Equal(t, value, r.Get(key).String(), "filter %s=%s", key, value)
			}
		}
	}
}

func TestSearchAndFilterCombine(t *testing.T) {
	e := New(Options{})
	e.SetSearchTerm("sales")
	e.SetFilter("location", "Delhi")
	assert.Equal(t, []string{"T1001"}, field(e.ComputeFiltered(employees()), "empId"))
}

func TestSortByString(t *testing.T) {
	e := New(Options{})
	e.SetSort("name")
	got := e.ComputeSorted(amounts())
	assert.Equal(t, []string{"al", "Bob", "Cy"}, field(got, "name"), "case-insensitive ascending")

	e.SetSort("name")
	got = e.ComputeSorted(amounts())
	assert.Equal(t, []string{"Cy", "Bob", "al"}, field(got, "name"))
}

func TestSortMissingFieldsFirst(t *testing.T) {
	data := []types.Record{
		{"id": num(1), "grade": str("b")},
		{"id": num(2)},
		{"id": num(3), "grade": str("a")},
		{"id": num(4)},
	}
	e := New(Options{})
	e.SetSort("grade")
	assert.Equal(t, []string{"2", "4", "3", "1"}, field(e.ComputeSorted(data), "id"))

	e.SetSort("grade")
	assert.Equal(t, []string{"1", "3", "2", "4"}, field(e.ComputeSorted(data), "id"), "blank ties keep relative order")
}

func TestSortIdempotent(t *testing.T) {
	for _, key := range []string{"name", "grossCTC", "department", "location"} {
		for _, twice := range []bool{false, true} {
			e := New(Options{})
			e.SetSort(key)
			if twice {
				e.SetSort(key)
			}
			once := e.ComputeSorted(employees())
			again := e.ComputeSorted(once)
			assert.Equal(t, once, again, "key %s desc=%v", key, twice)
		}
	}
}

func TestSortDescendingTiesKeepOrder(t *testing.T) {
	e := New(Options{})
	e.SetSort("department")
	e.SetSort("department")

	got := e.ComputeSorted(employees())
	assert.Equal(t, []string{"E1001", "E1002", "E1003", "T1001", "E1004", "E1005"}, field(got, "empId"))
}

func TestSortNumeric(t *testing.T) {
	e := New(Options{})
	e.SetSort("grossCTC")
	got := e.ComputeSorted(employees())
	assert.Equal(t, []string{"800000", "900000", "1200000", "1500000", "1800000", "2000000"}, field(got, "grossCTC"),
		"numbers compare numerically, not as text")
}

func TestDerivePure(t *testing.T) {
	data := employees()
	snapshot := employees()

	st := NewState(types.ViewCard)
	st.SearchTerm = "a"
	st.SortKey = "name"
	st.FilterValues["status"] = "Active"

	first := Derive(st, Options{Columns: employeeColumns()}, data)
	second := Derive(st, Options{Columns: employeeColumns()}, data)

	assert.Equal(t, first.Indices, second.Indices)
	assert.Equal(t, first.Sorted, second.Sorted)
	assert.Equal(t, snapshot, data, "derivation never mutates the source")
}

func TestDeriveIndicesPointAtSource(t *testing.T) {
	data := amounts()
	st := NewState(types.ViewTable)
	st.SortKey = "amount"
	st.SortDirection = types.SortDesc

	v := Derive(st, Options{}, data)
	require.Equal(t, []int{0, 1, 2}, v.Indices)
	for n, i := range v.Indices {
		assert.Equal(t, data[i], v.Sorted[n])
	}
}
