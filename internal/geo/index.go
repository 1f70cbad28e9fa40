package geo

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// paddingKM widens every cap so that points whose distance rounds down to
// the radius are still covered.
const paddingKM = 0.001

// coverCells bounds the number of cells in a query covering.
const coverCells = 8

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

type indexEntry struct {
	cell s2.CellID
	pos  uint32
}

// Index is an immutable spatial index over a fixed, ordered list of points.
// Points are addressed by their position in the list passed to NewIndex.
type Index struct {
	entries []indexEntry
	// invalid holds positions whose coordinates cannot be placed on a cell;
	// they are returned as candidates for every query.
	invalid []uint32
	size    int
	coverer *s2.RegionCoverer
}

// NewIndex builds an index over points using s2 leaf cells sorted by id.
func NewIndex(points []Point) *Index {
	ix := &Index{
		entries: make([]indexEntry, 0, len(points)),
		size:    len(points),
		coverer: &s2.RegionCoverer{MinLevel: 0, MaxLevel: s2.MaxLevel, LevelMod: 1, MaxCells: coverCells},
	}
	for i, p := range points {
		ll := s2.LatLngFromDegrees(p.Lat, p.Lon)
		if !ll.IsValid() {
			ix.invalid = append(ix.invalid, uint32(i))
			continue
		}
		ix.entries = append(ix.entries, indexEntry{cell: s2.CellIDFromLatLng(ll), pos: uint32(i)})
	}
	sort.Slice(ix.entries, func(i, j int) bool {
		if ix.entries[i].cell != ix.entries[j].cell {
			return ix.entries[i].cell < ix.entries[j].cell
		}
		return ix.entries[i].pos < ix.entries[j].pos
	})
	return ix
}

// Len returns the number of points the index was built over.
func (ix *Index) Len() int {
	return ix.size
}

// Candidates returns the positions of every point that may lie within
// radiusKM of (lat, lon). The result is a superset of the exact answer;
// callers must confirm each candidate with Distance.
func (ix *Index) Candidates(lat, lon, radiusKM float64) *roaring.Bitmap {
	bm := roaring.New()
	if ix.size == 0 || math.IsNaN(radiusKM) || radiusKM < 0 {
		return bm
	}

	center := s2.LatLngFromDegrees(lat, lon)
	angle := (radiusKM + paddingKM) / EarthRadiusKM
	if !center.IsValid() || angle >= math.Pi {
		bm.AddRange(0, uint64(ix.size))
		return bm
	}

	region := s2.CapFromCenterAngle(s2.PointFromLatLng(center), s1.Angle(angle))
	for _, cell := range ix.coverer.Covering(region) {
		lo, hi := cell.RangeMin(), cell.RangeMax()
		i := sort.Search(len(ix.entries), func(i int) bool { return ix.entries[i].cell >= lo })
		for ; i < len(ix.entries) && ix.entries[i].cell <= hi; i++ {
			bm.Add(ix.entries[i].pos)
		}
	}
	for _, pos := range ix.invalid {
		bm.Add(pos)
	}
	return bm
}
