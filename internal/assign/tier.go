package assign

import "github.com/rotisserie/eris"

// Tier is one priority level: bridges within RadiusKM of an inspector whose
// current BCI is at most MaxBCI.
type Tier struct {
	Name     string  `yaml:"name" mapstructure:"name" json:"name"`
	RadiusKM float64 `yaml:"radius_km" mapstructure:"radius_km" json:"radius_km"`
	MaxBCI   float64 `yaml:"max_bci" mapstructure:"max_bci" json:"max_bci"`
}

// DefaultTiers returns the standard high, medium and low priority tiers in
// evaluation order.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "high", RadiusKM: 500, MaxBCI: 60},
		{Name: "medium", RadiusKM: 250, MaxBCI: 70},
		{Name: "low", RadiusKM: 100, MaxBCI: 100},
	}
}

// ValidateTiers rejects an empty tier list, unnamed tiers and non-positive radii.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return eris.New("assign: at least one tier is required")
	}
	for i, t := range tiers {
		if t.Name == "" {
			return eris.Errorf("assign: tier %d has no name", i)
		}
		if !(t.RadiusKM > 0) {
			return eris.Errorf("assign: tier %q radius must be positive, got %v", t.Name, t.RadiusKM)
		}
	}
	return nil
}
