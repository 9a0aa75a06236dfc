package risk

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
	"github.com/jengzang/disease-risk-backend-go/internal/spatial"
)

// QueryAge is the patient age assumed for map queries
const QueryAge = 35

// Sampler scores one random point inside each risk zone around a center
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler creates a sampler; seed 0 picks a random seed
func NewSampler(seed uint64) *Sampler {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed+1))}
}

// uniform draws from [lo, hi)
func (s *Sampler) uniform(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

// perturb picks a point up to scale*radius away from the center on each axis
func (s *Sampler) perturb(lat, lng, radius, scale float64) (float64, float64) {
	latOffset, lngOffset := spatial.DegreeOffsets(lat, radius)
	return lat + s.uniform(-scale, scale)*latOffset,
		lng + s.uniform(-scale, scale)*lngOffset
}

// Sample returns one scored point per zone, highest score first.
// Each point keeps the level of the zone it was drawn from, so after sorting
// a "Low" ring can rank above a "Very High" ring.
func (s *Sampler) Sample(b *Bundle, lat, lng float64, disease string, at time.Time) ([]models.RiskArea, error) {
	areas := make([]models.RiskArea, 0, len(models.RiskZones))
	for _, zone := range models.RiskZones {
		zoneLat, zoneLng := s.perturb(lat, lng, zone.Radius, 1)

		score, err := b.Score(models.OccurrenceRecord{
			Latitude:       zoneLat,
			Longitude:      zoneLng,
			PatientAge:     QueryAge,
			DiseaseName:    disease,
			OccurrenceDate: at,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to score %s zone: %w", zone.Level, err)
		}

		areas = append(areas, models.RiskArea{
			Lat:       zoneLat,
			Lng:       zoneLng,
			RiskScore: score,
			RiskLevel: zone.Level,
			Radius:    zone.Radius,
		})
	}

	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].RiskScore > areas[j].RiskScore
	})

	return areas, nil
}

// Defaults returns the fixed fallback areas in zone order, each jittered
// within half its radius
func (s *Sampler) Defaults(lat, lng float64) []models.RiskArea {
	areas := make([]models.RiskArea, 0, len(models.RiskZones))
	for _, zone := range models.RiskZones {
		zoneLat, zoneLng := s.perturb(lat, lng, zone.Radius, 0.5)
		areas = append(areas, models.RiskArea{
			Lat:       zoneLat,
			Lng:       zoneLng,
			RiskScore: zone.DefaultScore,
			RiskLevel: zone.Level,
			Radius:    zone.Radius,
		})
	}
	return areas
}
