package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// Built-in column formats.
const (
	FormatPlain    = "plain"
	FormatLakh     = "lakh"
	FormatPercent  = "percent"
	FormatDate     = "date"
	FormatInitials = "initials"
)

var formats = map[string]types.RenderFunc{
	FormatPlain:    renderPlain,
	FormatLakh:     renderLakh,
	FormatPercent:  renderPercent,
	FormatDate:     renderDate,
	FormatInitials: renderInitials,
}

// Renderer returns the RenderFunc for a named format. The empty name maps to
// plain text.
func Renderer(name string) (types.RenderFunc, error) {
	if name == "" {
		return renderPlain, nil
	}
	fn, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: column %q", types.ErrUnknownFormat, name)
	}
	return fn, nil
}

func renderPlain(v types.Value, _ types.Record) string {
	return v.String()
}

// renderLakh shows amounts in lakh rupees: 1200000 -> ₹12.0L.
func renderLakh(v types.Value, _ types.Record) string {
	n, ok := v.Number()
	if !ok {
		return v.String()
	}
	return "₹" + strconv.FormatFloat(n/100000, 'f', 1, 64) + "L"
}

func renderPercent(v types.Value, _ types.Record) string {
	if v.IsNull() {
		return ""
	}
	return v.String() + "%"
}

func renderDate(v types.Value, _ types.Record) string {
	if t, ok := v.Time(); ok {
		return t.Format(types.DateLayout)
	}
	s := v.String()
	for _, layout := range []string{types.DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(types.DateLayout)
		}
	}
	return s
}

// renderInitials reduces a name to the first letter of each word.
func renderInitials(v types.Value, _ types.Record) string {
	var b strings.Builder
	for _, word := range strings.Fields(v.String()) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}
