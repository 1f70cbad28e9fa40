// Package dataset holds an ordered, in-memory collection of bridges and the
// queries that run over it.
package dataset

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/sells-group/bridge-cli/internal/fetcher"
	"github.com/sells-group/bridge-cli/internal/geo"
	"github.com/sells-group/bridge-cli/internal/model"
	"github.com/sells-group/bridge-cli/internal/normalize"
)

// NotFound is returned by id-valued queries when no bridge qualifies.
const NotFound = -1

// Dataset owns its bridges. Readers receive copies; mutation goes through
// Update. A Dataset is not safe for concurrent mutation.
type Dataset struct {
	bridges []model.Bridge
	byID    map[int]int // bridge id -> position in bridges
	spatial *geo.Index
}

// New builds a Dataset from a deep copy of bridges, preserving their order.
func New(bridges []model.Bridge) *Dataset {
	ds := &Dataset{
		bridges: make([]model.Bridge, len(bridges)),
		byID:    make(map[int]int, len(bridges)),
	}
	for i, b := range bridges {
		ds.bridges[i] = b.Clone()
		if _, dup := ds.byID[b.ID]; !dup {
			ds.byID[b.ID] = i
		}
	}
	ds.reindex()
	return ds
}

// Load reads the table at path, normalizes every row and builds a Dataset.
func Load(ctx context.Context, path string, opts fetcher.Options) (*Dataset, error) {
	rows, err := fetcher.ReadRows(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	bridges, err := normalize.Rows(rows)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("dataset: loaded",
		zap.String("path", path),
		zap.Int("bridges", len(bridges)),
	)
	return New(bridges), nil
}

func (ds *Dataset) reindex() {
	points := make([]geo.Point, len(ds.bridges))
	for i, b := range ds.bridges {
		points[i] = geo.Point{Lat: b.Latitude, Lon: b.Longitude}
	}
	ds.spatial = geo.NewIndex(points)
}

func (ds *Dataset) lookup(id int) (*model.Bridge, bool) {
	pos, ok := ds.byID[id]
	if !ok {
		return nil, false
	}
	return &ds.bridges[pos], true
}

// Len returns the number of bridges.
func (ds *Dataset) Len() int {
	return len(ds.bridges)
}

// IDs returns every bridge id in dataset order.
func (ds *Dataset) IDs() []int {
	ids := make([]int, len(ds.bridges))
	for i, b := range ds.bridges {
		ids[i] = b.ID
	}
	return ids
}

// Snapshot returns a deep copy of every bridge in dataset order.
func (ds *Dataset) Snapshot() []model.Bridge {
	out := make([]model.Bridge, len(ds.bridges))
	for i, b := range ds.bridges {
		out[i] = b.Clone()
	}
	return out
}

// Get returns a copy of the bridge with the given id.
func (ds *Dataset) Get(id int) (model.Bridge, bool) {
	b, ok := ds.lookup(id)
	if !ok {
		return model.Bridge{}, false
	}
	return b.Clone(), true
}

// Update applies fn to the stored bridge with the given id and reports
// whether the bridge exists. fn cannot change the bridge's id.
func (ds *Dataset) Update(id int, fn func(*model.Bridge)) bool {
	b, ok := ds.lookup(id)
	if !ok {
		return false
	}

	lat, lon := b.Latitude, b.Longitude
	fn(b)
	b.ID = id
	if b.Latitude != lat || b.Longitude != lon {
		ds.reindex()
	}
	return true
}

// AverageBCI returns the mean BCI of a bridge rounded to 4 decimal places,
// or 0 when the bridge is absent or has no readings.
func (ds *Dataset) AverageBCI(id int) float64 {
	b, ok := ds.lookup(id)
	if !ok || len(b.BCIs) == 0 {
		return 0
	}

	var sum float64
	for _, v := range b.BCIs {
		sum += v
	}
	return geo.Round(sum/float64(len(b.BCIs)), 4)
}

// TotalLengthOnHighway sums the length of every bridge whose highway equals
// highway exactly.
func (ds *Dataset) TotalLengthOnHighway(highway string) float64 {
	var total float64
	for _, b := range ds.bridges {
		if b.Highway == highway {
			total += b.Length
		}
	}
	return total
}

// DistanceBetween returns the distance in kilometers between two bridges.
func (ds *Dataset) DistanceBetween(a, b model.Bridge) float64 {
	return geo.Distance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// NearestTo returns the id of the bridge closest to the bridge with the
// given id, excluding that bridge itself. Ties go to the bridge that comes
// first in dataset order. Returns NotFound when id is absent.
func (ds *Dataset) NearestTo(id int) int {
	ref, ok := ds.lookup(id)
	if !ok {
		return NotFound
	}

	nearest := NotFound
	best := math.Inf(1)
	for _, b := range ds.bridges {
		if b.ID == id {
			continue
		}
		d := ds.DistanceBetween(*ref, b)
		if d < best {
			nearest, best = b.ID, d
		}
	}
	return nearest
}

// IDsWithinRadius returns, in dataset order, the ids of bridges at most
// radiusKM kilometers from (lat, lon).
func (ds *Dataset) IDsWithinRadius(lat, lon, radiusKM float64) []int {
	ids := []int{}
	it := ds.spatial.Candidates(lat, lon, radiusKM).Iterator()
	for it.HasNext() {
		b := ds.bridges[it.Next()]
		if geo.Distance(lat, lon, b.Latitude, b.Longitude) <= radiusKM {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// FilterByBCIAtMost returns the ids from ids, in their given order, of
// bridges that exist and whose current BCI is at most limit. Bridges with no
// readings are excluded.
func (ds *Dataset) FilterByBCIAtMost(ids []int, limit float64) []int {
	out := []int{}
	for _, id := range ids {
		b, ok := ds.lookup(id)
		if !ok {
			continue
		}
		if bci, ok := b.CurrentBCI(); ok && bci <= limit {
			out = append(out, id)
		}
	}
	return out
}

// IDsContainingText returns, in dataset order, the ids of bridges whose name
// contains text, ignoring case.
func (ds *Dataset) IDsContainingText(text string) []int {
	fold := cases.Fold()
	needle := fold.String(text)

	ids := []int{}
	for _, b := range ds.bridges {
		if strings.Contains(fold.String(b.Name), needle) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
