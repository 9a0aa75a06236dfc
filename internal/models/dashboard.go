package models

// DiseaseCount is the number of cases reported for one disease
type DiseaseCount struct {
	DiseaseName string `json:"disease_name" db:"disease_name"`
	Count       int64  `json:"count" db:"count"`
}

// Hotspot is a geohash cell with many reported cases
type Hotspot struct {
	Geohash string  `json:"geohash"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Count   int     `json:"count"`
}

// Dashboard holds the portal overview numbers
type Dashboard struct {
	TotalEntries  int64              `json:"total_entries"`
	DiseaseCounts []DiseaseCount     `json:"disease_counts"`
	RecentEntries []OccurrenceRecord `json:"recent_entries"`
	Hotspots      []Hotspot          `json:"hotspots"`
}
