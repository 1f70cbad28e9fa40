// Package normalize converts raw bridge inspection rows into typed records.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bridge-cli/internal/model"
)

// Raw column layout of the bridge conditions table.
const (
	ColID = iota // source identifier, discarded
	ColName
	ColHighway
	ColLatitude
	ColLongitude
	ColYearBuilt
	ColLastMajorRehab
	ColLastMinorRehab
	ColNumSpans // recomputed from the span details
	ColSpanDetails
	ColLength
	ColLastInspected
	ColCurrentBCI // duplicates the first history reading
	ColBCIHistory // alternating reading/blank block through the end of the row
)

// minColumns is the shortest row that carries every fixed column.
const minColumns = ColLastInspected + 1

// ParseError reports a raw field that could not be converted.
type ParseError struct {
	Row    int    // 1-based row number within the input
	Column string // column name
	Value  string // raw value
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("normalize: row %d: column %s: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Rows normalizes raw rows into bridges. IDs are assigned by position
// (row index + 1). The first malformed row aborts the whole call.
func Rows(rows [][]string) ([]model.Bridge, error) {
	bridges := make([]model.Bridge, 0, len(rows))
	for i, raw := range rows {
		b, err := Row(i, raw)
		if err != nil {
			// ParseError already names the row and column.
			return nil, err
		}
		bridges = append(bridges, b)
	}

	zap.L().Debug("normalize: rows complete", zap.Int("bridges", len(bridges)))
	return bridges, nil
}

// Row normalizes the raw row at position index.
func Row(index int, raw []string) (model.Bridge, error) {
	rowNum := index + 1
	if len(raw) < minColumns {
		return model.Bridge{}, &ParseError{
			Row:    rowNum,
			Column: "row",
			Value:  strings.Join(raw, ","),
			Err:    eris.Errorf("expected at least %d columns, got %d", minColumns, len(raw)),
		}
	}

	b := model.Bridge{
		ID:             rowNum,
		Name:           raw[ColName],
		Highway:        raw[ColHighway],
		YearBuilt:      raw[ColYearBuilt],
		LastMajorRehab: raw[ColLastMajorRehab],
		LastMinorRehab: raw[ColLastMinorRehab],
		LastInspected:  raw[ColLastInspected],
	}

	var err error
	if b.Latitude, err = parseFloat(rowNum, "latitude", raw[ColLatitude]); err != nil {
		return model.Bridge{}, err
	}
	if b.Longitude, err = parseFloat(rowNum, "longitude", raw[ColLongitude]); err != nil {
		return model.Bridge{}, err
	}
	if b.Length, err = parseLength(rowNum, raw[ColLength]); err != nil {
		return model.Bridge{}, err
	}

	spans := RawSpans(raw[ColSpanDetails])
	if err := spans.Normalize(); err != nil {
		return model.Bridge{}, &ParseError{Row: rowNum, Column: "span_details", Value: spans.Raw, Err: err}
	}
	b.SpanLengths = spans.Lengths
	b.NumSpans = spans.Count()

	if b.BCIs, err = parseBCIs(rowNum, raw); err != nil {
		return model.Bridge{}, err
	}

	return b, nil
}

func parseFloat(row int, column, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &ParseError{Row: row, Column: column, Value: value, Err: err}
	}
	return v, nil
}

// parseLength treats an empty length as 0.
func parseLength(row int, value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return parseFloat(row, "length", value)
}

// parseBCIs collects every non-blank reading in the history block in column
// order, so the first reading collected is the current one.
func parseBCIs(row int, raw []string) ([]float64, error) {
	bcis := []float64{}
	if len(raw) <= ColBCIHistory {
		return bcis, nil
	}
	for i, value := range raw[ColBCIHistory:] {
		if strings.TrimSpace(value) == "" {
			continue
		}
		v, err := parseFloat(row, fmt.Sprintf("bci[%d]", i), value)
		if err != nil {
			return nil, err
		}
		bcis = append(bcis, v)
	}
	return bcis, nil
}
