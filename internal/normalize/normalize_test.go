package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bridge-cli/internal/model"
)

func threeBridgesRaw() [][]string {
	return [][]string{
		{"1 -  32/", "Highway 24 Underpass at Highway 403", "403", "43.167233",
			"-80.275567", "1965", "2014", "2009", "4",
			"Total=64  (1)=12;(2)=19;(3)=21;(4)=12;", "65", "04/13/2012", "72.3", "",
			"72.3", "", "69.5", "", "70", "", "70.3", "", "70.5", "", "70.7", "72.9",
			""},
		{"1 -  43/", "WEST STREET UNDERPASS", "403", "43.164531", "-80.251582",
			"1963", "2014", "2007", "4",
			"Total=60.4  (1)=12.2;(2)=18;(3)=18;(4)=12.2;", "61", "04/13/2012",
			"71.5", "", "71.5", "", "68.1", "", "69", "", "69.4", "", "69.4", "",
			"70.3", "73.3", ""},
		{"2 -   4/", "STOKES RIVER BRIDGE", "6", "45.036739", "-81.33579", "1958",
			"2013", "", "1", "Total=16  (1)=16;", "18.4", "08/28/2013", "85.1",
			"85.1", "", "67.8", "", "67.4", "", "69.2", "70", "70.5", "", "75.1", "",
			"90.1", ""},
	}
}

func threeBridges() []model.Bridge {
	return []model.Bridge{
		{ID: 1, Name: "Highway 24 Underpass at Highway 403", Highway: "403",
			Latitude: 43.167233, Longitude: -80.275567, YearBuilt: "1965",
			LastMajorRehab: "2014", LastMinorRehab: "2009", NumSpans: 4,
			SpanLengths: []float64{12.0, 19.0, 21.0, 12.0}, Length: 65.0,
			LastInspected: "04/13/2012",
			BCIs:          []float64{72.3, 69.5, 70.0, 70.3, 70.5, 70.7, 72.9}},
		{ID: 2, Name: "WEST STREET UNDERPASS", Highway: "403",
			Latitude: 43.164531, Longitude: -80.251582, YearBuilt: "1963",
			LastMajorRehab: "2014", LastMinorRehab: "2007", NumSpans: 4,
			SpanLengths: []float64{12.2, 18.0, 18.0, 12.2}, Length: 61.0,
			LastInspected: "04/13/2012",
			BCIs:          []float64{71.5, 68.1, 69.0, 69.4, 69.4, 70.3, 73.3}},
		{ID: 3, Name: "STOKES RIVER BRIDGE", Highway: "6",
			Latitude: 45.036739, Longitude: -81.33579, YearBuilt: "1958",
			LastMajorRehab: "2013", LastMinorRehab: "", NumSpans: 1,
			SpanLengths: []float64{16.0}, Length: 18.4,
			LastInspected: "08/28/2013",
			BCIs:          []float64{85.1, 67.8, 67.4, 69.2, 70.0, 70.5, 75.1, 90.1}},
	}
}

func TestRows_ThreeBridges(t *testing.T) {
	got, err := Rows(threeBridgesRaw())
	require.NoError(t, err)
	assert.Equal(t, threeBridges(), got)
}

func TestRows_SingleRowGetsIDOne(t *testing.T) {
	raw := [][]string{
		{"2 -  29/", "MAPLE STREET OVERPASS", "402", "42.956781", "-81.346897",
			"1972", "2015", "2010", "3", "Total=48.5  (1)=15.5;(2)=18;(3)=15;",
			"49.5", "07/11/2015", "70.2", "", "70.2", "", "68.9", "", "69.3", "",
			"69.3", "", "70.1", "", "70.8", "71.4", ""},
	}
	got, err := Rows(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[0].NumSpans)
	assert.Equal(t, []float64{15.5, 18.0, 15.0}, got[0].SpanLengths)
	assert.Equal(t, 49.5, got[0].Length)
	assert.Equal(t, []float64{70.2, 68.9, 69.3, 69.3, 70.1, 70.8, 71.4}, got[0].BCIs)
}

func TestRows_Empty(t *testing.T) {
	got, err := Rows(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRow_BCIsAlternatingLayout(t *testing.T) {
	raw := []string{"2 -  30/", "SAUBLE RIVER BRIDGE, WEST OF ALLENFORD",
		"21", "44.532425", "-81.196354", "2014", "", "", "1",
		"Total=32  (1)=32;", "33.1", "07/25/2013", "60.9",
		"60.9", "", "61.8", "", "63.2", "", "65", "64.3",
		"64.1", "", "66.7", "", "67.1", ""}

	b, err := Row(0, raw)
	require.NoError(t, err)
	assert.Equal(t, []float64{60.9, 61.8, 63.2, 65.0, 64.3, 64.1, 66.7, 67.1}, b.BCIs)
	assert.Equal(t, "", b.LastMajorRehab)
	assert.Equal(t, "", b.LastMinorRehab)
}

func TestRow_EmptyOptionalFields(t *testing.T) {
	raw := []string{"x", "NO SPANS", "7", "44.0", "-80.0", "1990", "", "", "",
		"", "", "01/02/2020"}

	b, err := Row(4, raw)
	require.NoError(t, err)
	assert.Equal(t, 5, b.ID)
	assert.Equal(t, 0, b.NumSpans)
	assert.Equal(t, []float64{}, b.SpanLengths)
	assert.Equal(t, 0.0, b.Length)
	assert.Equal(t, []float64{}, b.BCIs)
}

func TestRow_IgnoresRawSpanCount(t *testing.T) {
	raw := threeBridgesRaw()[0]
	raw[ColNumSpans] = "99"

	b, err := Row(0, raw)
	require.NoError(t, err)
	assert.Equal(t, 4, b.NumSpans)
	assert.Len(t, b.SpanLengths, b.NumSpans)
}

func TestRow_ParseFailures(t *testing.T) {
	tests := []struct {
		name   string
		col    int
		value  string
		column string
	}{
		{name: "latitude", col: ColLatitude, value: "north", column: "latitude"},
		{name: "empty longitude", col: ColLongitude, value: "", column: "longitude"},
		{name: "length", col: ColLength, value: "65m", column: "length"},
		{name: "span value", col: ColSpanDetails, value: "Total=3 (1)=abc;", column: "span_details"},
		{name: "span without separator", col: ColSpanDetails, value: "Total=3 (1)3;", column: "span_details"},
		{name: "bci", col: ColBCIHistory + 1, value: "n/a", column: "bci[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := threeBridgesRaw()[1]
			raw[tt.col] = tt.value

			_, err := Row(1, raw)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, 2, perr.Row)
			assert.Equal(t, tt.column, perr.Column)
			assert.Equal(t, tt.value, perr.Value)
		})
	}
}

func TestRows_FailFast(t *testing.T) {
	raw := threeBridgesRaw()
	raw[1][ColLatitude] = "bad"

	got, err := Rows(raw)
	require.Error(t, err)
	assert.Nil(t, got)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Row)
	assert.Contains(t, err.Error(), "normalize: row 2: column latitude")
}

func TestRow_ShortRow(t *testing.T) {
	_, err := Row(0, []string{"1", "name", "403"})
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "row", perr.Column)
}
