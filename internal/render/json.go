package render

import (
	"encoding/json"
	"io"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

func init() {
	Register(FormatJSON, writeJSON)
}

type jsonSort struct {
	Key       string              `json:"key"`
	Direction types.SortDirection `json:"direction"`
}

type jsonRow struct {
	ID     string       `json:"id,omitempty"`
	Index  int          `json:"index"`
	Record types.Record `json:"record"`
}

type jsonLane struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type jsonView struct {
	View    types.ViewMode    `json:"view"`
	Search  string            `json:"search,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	Sort    *jsonSort         `json:"sort,omitempty"`
	Stats   engine.Stats      `json:"stats"`
	Lanes   []jsonLane        `json:"lanes,omitempty"`
	Rows    []jsonRow         `json:"rows"`
}

func writeJSON(w io.Writer, v engine.View, _ engine.Options, ro Options) error {
	out := jsonView{
		View:   v.State.ViewMode,
		Search: v.State.SearchTerm,
		Stats:  v.Stats,
		Rows:   []jsonRow{},
	}
	if len(v.State.FilterValues) > 0 {
		out.Filters = v.State.FilterValues
	}
	if v.State.SortKey != "" {
		out.Sort = &jsonSort{Key: v.State.SortKey, Direction: v.State.SortDirection}
	}
	if v.State.ViewMode == types.ViewKanban {
		for _, l := range v.Lanes {
			out.Lanes = append(out.Lanes, jsonLane{Value: l.Value, Count: len(l.Records)})
		}
	}
	start, end := ro.window(v)
	for n := start; n < end; n++ {
		out.Rows = append(out.Rows, jsonRow{
			ID:     ro.rowID(v.Indices[n]),
			Index:  v.Indices[n],
			Record: v.Sorted[n],
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
