package spatial

import (
	"sort"
	"strings"
)

// Base32 alphabet for geohash
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// MaxGeohashPrecision is the longest hash Encode produces
const MaxGeohashPrecision = 12

// Encode returns the geohash of p with precision characters (1-12)
func Encode(p Point, precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > MaxGeohashPrecision {
		precision = MaxGeohashPrecision
	}

	latLo, latHi := -90.0, 90.0
	lonLo, lonHi := -180.0, 180.0

	var sb strings.Builder
	sb.Grow(precision)

	bits, ch := 0, 0
	even := true
	for sb.Len() < precision {
		if even {
			mid := (lonLo + lonHi) / 2
			if p.Lon > mid {
				ch |= 1 << (4 - bits)
				lonLo = mid
			} else {
				lonHi = mid
			}
		} else {
			mid := (latLo + latHi) / 2
			if p.Lat > mid {
				ch |= 1 << (4 - bits)
				latLo = mid
			} else {
				latHi = mid
			}
		}
		even = !even

		bits++
		if bits == 5 {
			sb.WriteByte(base32[ch])
			bits, ch = 0, 0
		}
	}

	return sb.String()
}

// Decode returns the center of the geohash cell. Invalid characters are skipped.
func Decode(hash string) Point {
	latLo, latHi := -90.0, 90.0
	lonLo, lonHi := -180.0, 180.0

	even := true
	for i := 0; i < len(hash); i++ {
		idx := strings.IndexByte(base32, hash[i])
		if idx < 0 {
			continue
		}

		for mask := 16; mask > 0; mask >>= 1 {
			if even {
				mid := (lonLo + lonHi) / 2
				if idx&mask != 0 {
					lonLo = mid
				} else {
					lonHi = mid
				}
			} else {
				mid := (latLo + latHi) / 2
				if idx&mask != 0 {
					latLo = mid
				} else {
					latHi = mid
				}
			}
			even = !even
		}
	}

	return Point{Lat: (latLo + latHi) / 2, Lon: (lonLo + lonHi) / 2}
}

// Cell is a geohash bucket with the points that fell into it
type Cell struct {
	Geohash  string
	Center   Point
	Centroid Point
	Count    int
}

// Cluster buckets points by geohash prefix and returns the cells ordered by
// count (descending), then by hash
func Cluster(points []Point, precision int) []Cell {
	groups := make(map[string][]Point)
	for _, p := range points {
		h := Encode(p, precision)
		groups[h] = append(groups[h], p)
	}

	cells := make([]Cell, 0, len(groups))
	for h, pts := range groups {
		cells = append(cells, Cell{
			Geohash:  h,
			Center:   Decode(h),
			Centroid: Centroid(pts),
			Count:    len(pts),
		})
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Count != cells[j].Count {
			return cells[i].Count > cells[j].Count
		}
		return cells[i].Geohash < cells[j].Geohash
	})
	return cells
}
