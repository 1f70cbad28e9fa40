package model

// Bridge is one typed bridge inspection record.
type Bridge struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Highway        string    `json:"highway"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	YearBuilt      string    `json:"year_built"`
	LastMajorRehab string    `json:"last_major_rehab"` // 4-digit year or empty
	LastMinorRehab string    `json:"last_minor_rehab"` // 4-digit year or empty
	NumSpans       int       `json:"num_spans"`
	SpanLengths    []float64 `json:"span_lengths"`   // meters, source order
	Length         float64   `json:"length"`         // meters
	LastInspected  string    `json:"last_inspected"` // MM/DD/YYYY
	BCIs           []float64 `json:"bcis"`           // most recent first
}

// CurrentBCI returns the most recent BCI reading, if any.
func (b Bridge) CurrentBCI() (float64, bool) {
	if len(b.BCIs) == 0 {
		return 0, false
	}
	return b.BCIs[0], true
}

// Clone returns a deep copy of b that shares no slices with it.
func (b Bridge) Clone() Bridge {
	c := b
	c.SpanLengths = cloneFloats(b.SpanLengths)
	c.BCIs = cloneFloats(b.BCIs)
	return c
}

// AddInspection prepends a new BCI reading and records the inspection date.
func (b *Bridge) AddInspection(date string, bci float64) {
	b.LastInspected = date
	b.BCIs = append([]float64{bci}, b.BCIs...)
}

// SetRehab records a rehabilitation year as the last major or minor rehab.
func (b *Bridge) SetRehab(year string, major bool) {
	if major {
		b.LastMajorRehab = year
		return
	}
	b.LastMinorRehab = year
}

func cloneFloats(in []float64) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	copy(out, in)
	return out
}
