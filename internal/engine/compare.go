package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// MixedTypeLexicographicFallback is the comparison policy used for sorting.
// A pair of values compares numerically only when both are numbers. Every
// other combination, including a number against a numeric-looking string,
// compares the lower-cased string forms lexicographically. A column holding
// numbers in some records and strings in others therefore orders
// deterministically but not numerically.
const MixedTypeLexicographicFallback = "mixed-type-lexicographic-fallback"

// comparison is a sealed tagged union over the two ways a pair of values can
// be ordered.
type comparison interface {
	compare() int
}

type numericPair struct {
	a, b float64
}

func (p numericPair) compare() int {
	switch {
	case p.a < p.b:
		return -1
	case p.a > p.b:
		return 1
	default:
		return 0
	}
}

type stringPair struct {
	a, b string
}

func (p stringPair) compare() int {
	return strings.Compare(p.a, p.b)
}

// folder lower-cases strings for search and comparison. A folder is not safe
// for concurrent use; each derivation creates its own.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Lower(language.Und)}
}

func (f *folder) lower(s string) string {
	return f.caser.String(s)
}

// pairOf classifies a and b under MixedTypeLexicographicFallback.
func (f *folder) pairOf(a, b types.Value) comparison {
	an, aok := a.Number()
	bn, bok := b.Number()
	if aok && bok {
		return numericPair{a: an, b: bn}
	}
	return stringPair{a: f.lower(a.String()), b: f.lower(b.String())}
}

// Compare orders a and b under MixedTypeLexicographicFallback, returning a
// negative number, zero or a positive number.
func Compare(a, b types.Value) int {
	return newFolder().pairOf(a, b).compare()
}
