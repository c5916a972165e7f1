package schema

import (
	"fmt"

	"github.com/mesh-intelligence/payroll/internal/engine"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

// Summary item kinds.
const (
	SummaryCount      = "count"
	SummaryCountWhere = "count_where"
	SummaryDistinct   = "distinct"
	SummarySum        = "sum"
	SummaryMean       = "mean"
)

// SummaryItem is one page header statistic computed over a whole dataset.
type SummaryItem struct {
	Label  string `yaml:"label"`
	Kind   string `yaml:"kind"`
	Key    string `yaml:"key,omitempty"`
	Value  string `yaml:"value,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// SummaryValue is a computed SummaryItem.
type SummaryValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (s SummaryItem) validate() error {
	switch s.Kind {
	case SummaryCount:
		return nil
	case SummaryCountWhere, SummaryDistinct, SummarySum, SummaryMean:
		if s.Key == "" {
			return fmt.Errorf("%w: %s needs a key", types.ErrInvalidSchema, s.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown summary kind %q", types.ErrInvalidSchema, s.Kind)
	}
	if _, err := Renderer(s.Format); err != nil {
		return err
	}
	return nil
}

// Summarize evaluates the page summary over data.
func (t *Table) Summarize(data []types.Record) []SummaryValue {
	out := make([]SummaryValue, 0, len(t.Summary))
	for _, item := range t.Summary {
		var v types.Value
		switch item.Kind {
		case SummaryCount:
			v = types.NewInt(int64(len(data)))
		case SummaryCountWhere:
			v = types.NewInt(int64(engine.CountWhere(data, item.Key, item.Value)))
		case SummaryDistinct:
			v = types.NewInt(int64(engine.Distinct(data, item.Key)))
		case SummarySum:
			v = types.NewNumber(engine.Sum(data, item.Key))
		case SummaryMean:
			v = types.NewInt(int64(engine.Mean(data, item.Key)))
		}
		render, err := Renderer(item.Format)
		if err != nil {
			render = renderPlain
		}
		out = append(out, SummaryValue{Label: item.Label, Value: render(v, nil)})
	}
	return out
}

// String formats a summary value as "label: value".
func (v SummaryValue) String() string {
	return v.Label + ": " + v.Value
}
