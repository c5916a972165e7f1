package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

func TestRenderer(t *testing.T) {
	tests := []struct {
		format string
		value  types.Value
		want   string
	}{
		{format: "", value: types.NewString("Mumbai"), want: "Mumbai"},
		{format: FormatPlain, value: types.NewNumber(1200000), want: "1200000"},
		{format: FormatPlain, value: types.Null, want: ""},
		{format: FormatLakh, value: types.NewNumber(1200000), want: "₹12.0L"},
		{format: FormatLakh, value: types.NewNumber(850000), want: "₹8.5L"},
		{format: FormatLakh, value: types.NewString("n/a"), want: "n/a"},
		{format: FormatPercent, value: types.NewNumber(10), want: "10%"},
		{format: FormatPercent, value: types.Null, want: ""},
		{format: FormatDate, value: types.NewString("2023-01-15"), want: "2023-01-15"},
		{format: FormatDate, value: types.NewString("2023-01-15T10:30:00Z"), want: "2023-01-15"},
		{format: FormatDate, value: types.NewDate(time.Date(2022, 6, 10, 0, 0, 0, 0, time.UTC)), want: "2022-06-10"},
		{format: FormatDate, value: types.NewString("soon"), want: "soon"},
		{format: FormatInitials, value: types.NewString("John Smith"), want: "JS"},
		{format: FormatInitials, value: types.NewString("  Priya   Sharma "), want: "PS"},
		{format: FormatInitials, value: types.Null, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.want, func(t *testing.T) {
			fn, err := Renderer(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fn(tt.value, nil))
		})
	}
}

func TestRendererUnknown(t *testing.T) {
	_, err := Renderer("currency")
	assert.ErrorIs(t, err, types.ErrUnknownFormat)
}
