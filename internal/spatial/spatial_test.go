package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Delhi to Mumbai, roughly 1150 km
	d := DistanceKm(Point{Lat: 28.6139, Lon: 77.2090}, Point{Lat: 19.0760, Lon: 72.8777})
	assert.InDelta(t, 1150, d, 15)

	assert.Zero(t, HaversineDistance(10, 10, 10, 10))
}

func TestDegreeOffsets(t *testing.T) {
	latOff, lonOff := DegreeOffsets(0, 1110)
	assert.InDelta(t, 0.01, latOff, 1e-12)
	assert.InDelta(t, 0.01, lonOff, 1e-12)

	_, lonOff = DegreeOffsets(60, 1110)
	assert.InDelta(t, 0.02, lonOff, 1e-9)
}

func TestGeohashEncodeDecode(t *testing.T) {
	p := Point{Lat: 57.64911, Lon: 10.40744}
	assert.Equal(t, "u4pruydqqvj", Encode(p, 11))

	c := Decode("u4pruydqqvj")
	assert.InDelta(t, p.Lat, c.Lat, 1e-5)
	assert.InDelta(t, p.Lon, c.Lon, 1e-5)

	assert.Len(t, Encode(p, 0), 1)
	assert.Len(t, Encode(p, 40), MaxGeohashPrecision)
}

func TestCluster(t *testing.T) {
	points := []Point{
		{Lat: 28.6139, Lon: 77.2090},
		{Lat: 28.6140, Lon: 77.2091},
		{Lat: 19.0760, Lon: 72.8777},
	}

	cells := Cluster(points, 5)
	assert.Len(t, cells, 2)
	assert.Equal(t, 2, cells[0].Count)
	assert.Equal(t, Encode(points[0], 5), cells[0].Geohash)
	assert.InDelta(t, 28.61395, cells[0].Centroid.Lat, 1e-9)
	assert.Equal(t, 1, cells[1].Count)

	assert.Empty(t, Cluster(nil, 5))
}

func TestCentroidAndBounds(t *testing.T) {
	assert.Equal(t, Point{}, Centroid(nil))
	assert.Equal(t, Point{Lat: 1, Lon: 2}, Centroid([]Point{{Lat: 0, Lon: 0}, {Lat: 2, Lon: 4}}))

	assert.True(t, InBounds(Point{Lat: 90, Lon: -180}))
	assert.False(t, InBounds(Point{Lat: 91, Lon: 0}))
}
