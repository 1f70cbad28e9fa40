package assign

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Plan is an assignment request read from YAML. Tiers is optional.
type Plan struct {
	MaxPerInspector int        `yaml:"max_per_inspector"`
	Inspectors      []Location `yaml:"inspectors"`
	Tiers           []Tier     `yaml:"tiers,omitempty"`
}

// LoadPlan reads an assignment plan from a YAML file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "assign: read plan %s", path)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, eris.Wrap(err, "assign: parse plan")
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Validate checks capacity, inspector coordinates and any explicit tiers.
func (p *Plan) Validate() error {
	if p.MaxPerInspector < 0 {
		return eris.Errorf("assign: max_per_inspector must be >= 0, got %d", p.MaxPerInspector)
	}
	for i, loc := range p.Inspectors {
		if !(loc.Latitude >= -90 && loc.Latitude <= 90) || !(loc.Longitude >= -180 && loc.Longitude <= 180) {
			return eris.Errorf("assign: inspector %d has invalid location (%v, %v)", i, loc.Latitude, loc.Longitude)
		}
	}
	if len(p.Tiers) > 0 {
		return ValidateTiers(p.Tiers)
	}
	return nil
}
