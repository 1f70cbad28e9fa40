package dataset

import "github.com/sells-group/bridge-cli/internal/geo"

// Summary aggregates a dataset for reporting.
type Summary struct {
	Bridges        int     `json:"bridges"`
	Highways       int     `json:"highways"`
	TotalLengthM   float64 `json:"total_length_m"`
	WithBCI        int     `json:"with_bci"`
	WithoutBCI     int     `json:"without_bci"`
	MeanCurrentBCI float64 `json:"mean_current_bci"` // over bridges with readings, 4 dp
	MinCurrentBCI  float64 `json:"min_current_bci"`
	WorstBridgeID  int     `json:"worst_bridge_id"` // NotFound when no bridge has readings
}

// Stats summarizes the dataset. Bridges without readings are counted but do
// not contribute to the BCI figures.
func (ds *Dataset) Stats() Summary {
	s := Summary{Bridges: len(ds.bridges), WorstBridgeID: NotFound}
	highways := make(map[string]struct{})

	var sum float64
	for _, b := range ds.bridges {
		highways[b.Highway] = struct{}{}
		s.TotalLengthM += b.Length

		bci, ok := b.CurrentBCI()
		if !ok {
			s.WithoutBCI++
			continue
		}
		if s.WithBCI == 0 || bci < s.MinCurrentBCI {
			s.MinCurrentBCI = bci
			s.WorstBridgeID = b.ID
		}
		s.WithBCI++
		sum += bci
	}

	s.Highways = len(highways)
	if s.WithBCI > 0 {
		s.MeanCurrentBCI = geo.Round(sum/float64(s.WithBCI), 4)
	}
	return s
}
