package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// compactColumnCount is the number of columns shown in the compact layout.
const compactColumnCount = 2

// Stats summarises how much of the source collection the view shows.
type Stats struct {
	Total     int `json:"total"`
	Filtered  int `json:"filtered"`
	MatchRate int `json:"match_rate"`
	Columns   int `json:"columns"`
}

// Lane is one kanban column: the sorted records sharing a lane value.
type Lane struct {
	Value   string         `json:"value"`
	Indices []int          `json:"indices"`
	Records []types.Record `json:"-"`
}

// View is everything presentation needs for one render. It is recomputed
// from scratch on every state change.
type View struct {
	State    State          `json:"state"`
	Filtered []types.Record `json:"-"`
	Sorted   []types.Record `json:"records"`
	// Indices holds the source index of each record in Sorted. Callers use
	// it as the row key when dispatching actions.
	Indices           []int              `json:"indices"`
	Stats             Stats              `json:"stats"`
	ActiveFilterCount int                `json:"active_filters"`
	VisibleColumns    []types.ColumnSpec `json:"-"`
	CompactColumns    []types.ColumnSpec `json:"-"`
	Lanes             []Lane             `json:"-"`
}

// Empty reports whether no record matched.
func (v View) Empty() bool { return len(v.Sorted) == 0 }

// Summary returns the "Showing N of M results" line.
func (v View) Summary() string {
	return fmt.Sprintf("Showing %d of %d results", v.Stats.Filtered, v.Stats.Total)
}

// Derive computes the view of data under s and opts. It is pure: the same
// inputs always produce the same view and data is never modified.
func Derive(s State, opts Options, data []types.Record) View {
	f := newFolder()
	filtered := filterIndices(f, s, data)
	sorted := sortIndices(f, s, data, filtered)

	visible := VisibleColumns(opts.Columns)
	compact := visible
	if len(compact) > compactColumnCount {
		compact = compact[:compactColumnCount]
	}

	return View{
		State:    s.Clone(),
		Filtered: pick(data, filtered),
		Sorted:   pick(data, sorted),
		Indices:  sorted,
		Stats: Stats{
			Total:     len(data),
			Filtered:  len(filtered),
			MatchRate: MatchRate(len(filtered), len(data)),
			Columns:   len(opts.Columns),
		},
		ActiveFilterCount: s.ActiveFilterCount(),
		VisibleColumns:    visible,
		CompactColumns:    compact,
		Lanes:             buildLanes(opts.laneKey(), data, sorted),
	}
}

// VisibleColumns returns the columns not marked MobileHidden.
func VisibleColumns(cols []types.ColumnSpec) []types.ColumnSpec {
	out := make([]types.ColumnSpec, 0, len(cols))
	for _, c := range cols {
		if !c.MobileHidden {
			out = append(out, c)
		}
	}
	return out
}

// buildLanes groups the sorted indices by lane value. Lanes appear in order
// of first appearance in the source data, so a lane whose records are all
// filtered out is still present and empty.
func buildLanes(key string, data []types.Record, sorted []int) []Lane {
	var lanes []Lane
	pos := make(map[string]int)
	for _, rec := range data {
		val := rec.Get(key).String()
		if _, ok := pos[val]; ok {
			continue
		}
		pos[val] = len(lanes)
		lanes = append(lanes, Lane{Value: val, Indices: []int{}, Records: []types.Record{}})
	}
	for _, i := range sorted {
		l := &lanes[pos[data[i].Get(key).String()]]
		l.Indices = append(l.Indices, i)
		l.Records = append(l.Records, data[i])
	}
	return lanes
}

// Card holds the headline fields of a record in card, grid and kanban
// layouts.
type Card struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Badge    string `json:"badge"`
}

// Card returns the card headline for rec. The title falls back to the first
// column and then to "Untitled"; the badge falls back to the first letter of
// the first column and then to "?".
func (o Options) Card(rec types.Record) Card {
	var first string
	if len(o.Columns) > 0 {
		first = rec.Get(o.Columns[0].Key).String()
	}

	c := Card{Title: first, Badge: "?"}
	if o.CardTitleKey != "" {
		if t := rec.Get(o.CardTitleKey).String(); t != "" {
			c.Title = t
		}
	}
	if c.Title == "" {
		c.Title = "Untitled"
	}
	if o.CardSubtitleKey != "" {
		c.Subtitle = rec.Get(o.CardSubtitleKey).String()
	}

	switch img := rec.Get(o.CardImageKey).String(); {
	case o.CardImageKey != "" && img != "":
		c.Badge = img
	case first != "":
		r, _ := utf8.DecodeRuneInString(first)
		c.Badge = string(r)
	}
	return c
}
