package engine

import (
	"math"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// MatchRate returns part as a rounded percentage of total. An empty total
// yields 0 rather than NaN.
func MatchRate(part, total int) int {
	if total == 0 {
		return 0
	}
	return roundHalfUp(float64(part) * 100 / float64(total))
}

// CountWhere counts the records whose key field stringifies to value.
func CountWhere(data []types.Record, key, value string) int {
	n := 0
	for _, rec := range data {
		if rec.Get(key).String() == value {
			n++
		}
	}
	return n
}

// Distinct counts the distinct string forms of key across data. Absent
// fields count as one blank value.
func Distinct(data []types.Record, key string) int {
	seen := make(map[string]struct{})
	for _, rec := range data {
		seen[rec.Get(key).String()] = struct{}{}
	}
	return len(seen)
}

// Sum adds the numeric values of key. Non-numeric and absent fields count
// as zero.
func Sum(data []types.Record, key string) float64 {
	var total float64
	for _, rec := range data {
		if n, ok := rec.Get(key).Number(); ok {
			total += n
		}
	}
	return total
}

// Mean averages key over every record, counting non-numeric fields as zero,
// and rounds to the nearest integer. An empty collection yields 0.
func Mean(data []types.Record, key string) int {
	if len(data) == 0 {
		return 0
	}
	return roundHalfUp(Sum(data, key) / float64(len(data)))
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
