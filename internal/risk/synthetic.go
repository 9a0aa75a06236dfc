package risk

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
	"github.com/jengzang/disease-risk-backend-go/internal/spatial"
)

// ReferenceCities anchor generated filler records
var ReferenceCities = []spatial.Point{
	{Lat: 12.9716, Lon: 77.5946}, // Bangalore
	{Lat: 19.0760, Lon: 72.8777}, // Mumbai
	{Lat: 28.7041, Lon: 77.1025}, // Delhi
	{Lat: 22.5726, Lon: 88.3639}, // Kolkata
	{Lat: 13.0827, Lon: 80.2707}, // Chennai
}

// DefaultSyntheticCount is the number of filler records added to a small training set
const DefaultSyntheticCount = 20

// SyntheticGenerator produces plausible occurrence records around the reference cities
type SyntheticGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand

	Cities   []spatial.Point
	Diseases []string
	Jitter   float64 // Degrees around each city
}

// NewSyntheticGenerator creates a generator; seed 0 picks a random seed
func NewSyntheticGenerator(seed uint64) *SyntheticGenerator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &SyntheticGenerator{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Cities:   ReferenceCities,
		Diseases: models.Diseases,
		Jitter:   0.5,
	}
}

// Generate returns n records dated 1-365 days before now
func (g *SyntheticGenerator) Generate(n int, now time.Time) []models.OccurrenceRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]models.OccurrenceRecord, 0, n)
	for i := 0; i < n; i++ {
		city := g.Cities[g.rng.IntN(len(g.Cities))]
		daysAgo := 1 + g.rng.IntN(365)

		out = append(out, models.OccurrenceRecord{
			DiseaseName:    g.Diseases[g.rng.IntN(len(g.Diseases))],
			PatientAge:     float64(1 + g.rng.IntN(90)),
			Latitude:       city.Lat + g.uniform(-g.Jitter, g.Jitter),
			Longitude:      city.Lon + g.uniform(-g.Jitter, g.Jitter),
			OccurrenceDate: now.AddDate(0, 0, -daysAgo),
		})
	}
	return out
}

func (g *SyntheticGenerator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}
