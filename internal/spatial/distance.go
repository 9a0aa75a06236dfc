package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers

	// MetersPerDegree is the flat-earth approximation used for map offsets
	MetersPerDegree = 111000.0
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DistanceKm calculates the great-circle distance between two points in kilometers
func DistanceKm(a, b Point) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) / 1000
}

// DegreeOffsets converts a radius in meters to approximate latitude and
// longitude offsets in degrees at the given latitude
func DegreeOffsets(lat, radiusMeters float64) (latOffset, lonOffset float64) {
	latOffset = radiusMeters / MetersPerDegree
	lonOffset = radiusMeters / (MetersPerDegree * math.Cos(lat*math.Pi/180))
	return latOffset, lonOffset
}
