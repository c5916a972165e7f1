package engine

import (
	"slices"
	"strings"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// Filter returns the source indices of the records in data that satisfy s,
// in source order.
//
// A record is kept iff the search term is empty or some field's string form
// contains it case-insensitively, and every active filter equals the field's
// string form exactly. Search runs on raw values, never on rendered text.
func Filter(s State, data []types.Record) []int {
	return filterIndices(newFolder(), s, data)
}

// Sort orders idx (indices into data) by the sort key of s. Without a sort
// key idx is returned in its original order. The sort is stable and a
// descending direction negates the comparator, so ties keep their relative
// order in both directions.
func Sort(s State, data []types.Record, idx []int) []int {
	return sortIndices(newFolder(), s, data, idx)
}

func filterIndices(f *folder, s State, data []types.Record) []int {
	term := f.lower(s.SearchTerm)
	active := s.ActiveFilters()

	idx := make([]int, 0, len(data))
	for i, rec := range data {
		if term != "" && !matchesSearch(f, rec, term) {
			continue
		}
		if !matchesFilters(rec, s.FilterValues, active) {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

func matchesSearch(f *folder, rec types.Record, term string) bool {
	for _, v := range rec {
		if strings.Contains(f.lower(v.String()), term) {
			return true
		}
	}
	return false
}

// matchesFilters compares case-sensitively; "all" never reaches here
// because inactive values are excluded from active.
func matchesFilters(rec types.Record, values map[string]string, active []string) bool {
	for _, key := range active {
		if rec.Get(key).String() != values[key] {
			return false
		}
	}
	return true
}

func sortIndices(f *folder, s State, data []types.Record, idx []int) []int {
	out := slices.Clone(idx)
	if s.SortKey == "" {
		return out
	}

	sign := 1
	if s.SortDirection == types.SortDesc {
		sign = -1
	}
	key := s.SortKey
	slices.SortStableFunc(out, func(i, j int) int {
		return sign * f.pairOf(data[i].Get(key), data[j].Get(key)).compare()
	})
	return out
}

func pick(data []types.Record, idx []int) []types.Record {
	out := make([]types.Record, len(idx))
	for n, i := range idx {
		out[n] = data[i]
	}
	return out
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
