package models

import "time"

// Risk levels shown on the map
const (
	RiskLevelVeryHigh = "Very High"
	RiskLevelHigh     = "High"
	RiskLevelMedium   = "Medium"
	RiskLevelLow      = "Low"
)

// RiskZone is a fixed display ring around a reported case
type RiskZone struct {
	Radius       float64 // Meters
	Level        string
	DefaultScore float64 // Used when no model prediction is available
}

// RiskZones lists the display rings from the innermost outwards
var RiskZones = []RiskZone{
	{Radius: 500, Level: RiskLevelVeryHigh, DefaultScore: 0.8},
	{Radius: 1000, Level: RiskLevelHigh, DefaultScore: 0.6},
	{Radius: 2000, Level: RiskLevelMedium, DefaultScore: 0.4},
	{Radius: 3000, Level: RiskLevelLow, DefaultScore: 0.2},
}

// RiskArea is one scored point on the risk map
type RiskArea struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	RiskScore float64 `json:"risk_score"` // 0~1
	RiskLevel string  `json:"risk_level"`
	Radius    float64 `json:"radius"` // Meters
}

// RiskPrediction is a persisted risk area linked to a reported case
type RiskPrediction struct {
	ID             int64     `json:"id" db:"id"`
	EntryID        int64     `json:"entry_id" db:"disease_entry_id"`
	PredictedLat   float64   `json:"predicted_lat" db:"predicted_lat"`
	PredictedLng   float64   `json:"predicted_lng" db:"predicted_lng"`
	RiskScore      float64   `json:"risk_score" db:"risk_score"`
	RiskRadius     float64   `json:"risk_radius" db:"risk_radius"`
	RiskLevel      string    `json:"risk_level" db:"risk_level"`
	PredictionDate time.Time `json:"prediction_date" db:"prediction_date"`
}

// EntryRisk bundles a case with the risk areas computed around it
type EntryRisk struct {
	Entry     *OccurrenceRecord `json:"entry"`
	RiskAreas []RiskArea        `json:"risk_areas"`
}
