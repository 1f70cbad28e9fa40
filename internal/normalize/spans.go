package normalize

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

const (
	spanSep  = ";"
	valueSep = "="
)

// SpanField is the span-details column of a bridge row. It starts out holding
// the raw composite string and holds the per-span lengths once normalized.
type SpanField struct {
	Raw     string
	Lengths []float64
	parsed  bool
}

// RawSpans wraps an unparsed span-details string such as
// "Total=64  (1)=12;(2)=19;(3)=21;(4)=12;".
func RawSpans(detail string) SpanField {
	return SpanField{Raw: detail}
}

// ParsedSpans wraps span lengths that are already numeric.
func ParsedSpans(lengths []float64) SpanField {
	return SpanField{Lengths: lengths, parsed: true}
}

// Parsed reports whether the field already holds numeric span lengths.
func (f SpanField) Parsed() bool {
	return f.parsed
}

// Count returns the number of spans. It is zero until the field is normalized.
func (f SpanField) Count() int {
	return len(f.Lengths)
}

// Normalize parses Raw into Lengths. Calling it on a parsed field is a no-op.
func (f *SpanField) Normalize() error {
	if f.parsed {
		return nil
	}

	lengths, err := parseSpanDetail(f.Raw)
	if err != nil {
		return err
	}
	f.Lengths = lengths
	f.parsed = true
	return nil
}

// parseSpanDetail extracts the per-span breakdown from the last
// whitespace-separated segment of detail.
func parseSpanDetail(detail string) ([]float64, error) {
	fields := strings.Fields(detail)
	if len(fields) == 0 {
		return []float64{}, nil
	}

	breakdown := fields[len(fields)-1]
	lengths := []float64{}
	for _, part := range strings.Split(breakdown, spanSep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		_, value, ok := strings.Cut(part, valueSep)
		if !ok {
			return nil, eris.Errorf("normalize: span segment %q has no %q", part, valueSep)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "normalize: span segment %q", part)
		}
		lengths = append(lengths, v)
	}
	return lengths, nil
}
