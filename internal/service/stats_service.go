package service

import (
	"context"
	"fmt"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
	"github.com/jengzang/disease-risk-backend-go/internal/repository"
	"github.com/jengzang/disease-risk-backend-go/internal/spatial"
)

const (
	dashboardRecentLimit = 5
	hotspotPrecision     = 5 // ~5 km cells
	maxHotspots          = 5
)

// StatsService builds the dashboard overview
type StatsService struct {
	repo *repository.OccurrenceRepository
}

// NewStatsService creates a new stats service
func NewStatsService(repo *repository.OccurrenceRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Dashboard returns totals, per-disease counts, recent entries and hotspots
func (s *StatsService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	counts, err := s.repo.CountByDisease(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count by disease: %w", err)
	}

	recent, err := s.repo.Recent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent entries: %w", err)
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return &models.Dashboard{
		TotalEntries:  total,
		DiseaseCounts: counts,
		RecentEntries: recent,
		Hotspots:      hotspots(records),
	}, nil
}

func hotspots(records []models.OccurrenceRecord) []models.Hotspot {
	points := make([]spatial.Point, len(records))
	for i, r := range records {
		points[i] = spatial.Point{Lat: r.Latitude, Lon: r.Longitude}
	}

	cells := spatial.Cluster(points, hotspotPrecision)
	if len(cells) > maxHotspots {
		cells = cells[:maxHotspots]
	}

	out := make([]models.Hotspot, len(cells))
	for i, c := range cells {
		out[i] = models.Hotspot{
			Geohash: c.Geohash,
			Lat:     c.Centroid.Lat,
			Lng:     c.Centroid.Lon,
			Count:   c.Count,
		}
	}
	return out
}
