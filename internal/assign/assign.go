// Package assign routes inspectors to bridges in priority tiers.
//
// Inspectors are served in input order and tiers in their given order. Each
// bridge goes to the first inspector and tier that reaches it, so earlier
// inspectors take precedence over later ones. The result is greedy, not an
// optimal matching.
package assign

import (
	"github.com/RoaringBitmap/roaring/v2"
	"go.uber.org/zap"

	"github.com/sells-group/bridge-cli/internal/dataset"
)

// Location is an inspector's position in degrees.
type Location struct {
	Name      string  `yaml:"name,omitempty" json:"name,omitempty"`
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// Result holds one list of bridge ids per inspector, in inspector input order.
type Result [][]int

// Total returns the number of bridges assigned across all inspectors.
func (r Result) Total() int {
	n := 0
	for _, ids := range r {
		n += len(ids)
	}
	return n
}

// Option configures an Assigner.
type Option func(*Assigner)

// WithTiers replaces the default tiers. Tiers are evaluated in slice order.
func WithTiers(tiers []Tier) Option {
	return func(a *Assigner) {
		a.tiers = append([]Tier(nil), tiers...)
	}
}

// Assigner assigns bridges from a dataset to inspectors.
type Assigner struct {
	ds    *dataset.Dataset
	tiers []Tier
}

// New creates an Assigner over ds using DefaultTiers unless overridden.
func New(ds *dataset.Dataset, opts ...Option) *Assigner {
	a := &Assigner{ds: ds, tiers: DefaultTiers()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tiers returns a copy of the tiers in evaluation order.
func (a *Assigner) Tiers() []Tier {
	return append([]Tier(nil), a.tiers...)
}

// Assign gives each inspector at most maxPerInspector bridges. No bridge is
// assigned twice. A non-positive maxPerInspector yields an empty list for
// every inspector.
func (a *Assigner) Assign(inspectors []Location, maxPerInspector int) Result {
	result := make(Result, len(inspectors))
	assigned := roaring.New()

	for i, loc := range inspectors {
		ids := []int{}
		for _, tier := range a.tiers {
			if len(ids) >= maxPerInspector {
				break
			}
			candidates := a.ds.IDsWithinRadius(loc.Latitude, loc.Longitude, tier.RadiusKM)
			candidates = a.ds.FilterByBCIAtMost(candidates, tier.MaxBCI)
			for _, id := range candidates {
				if len(ids) >= maxPerInspector {
					break
				}
				// CheckedAdd reports false when id is already taken.
				if !assigned.CheckedAdd(uint32(id)) {
					continue
				}
				ids = append(ids, id)
			}
		}

		zap.L().Debug("assign: inspector served",
			zap.Int("inspector", i),
			zap.String("name", loc.Name),
			zap.Ints("bridge_ids", ids),
		)
		result[i] = ids
	}

	return result
}
