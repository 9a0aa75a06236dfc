package models

import "time"

// Disease names accepted by the portal
const (
	DiseaseDengue       = "dengue"
	DiseaseMalaria      = "malaria"
	DiseaseChikungunya  = "chikungunya"
	DiseaseTyphoid      = "typhoid"
	DiseaseHepatitisA   = "hepatitis_a"
	DiseaseTuberculosis = "tuberculosis"
	DiseaseCovid19      = "covid19"
	DiseaseInfluenza    = "influenza"
	DiseaseOther        = "other"
)

// Diseases lists every accepted disease name in display order
var Diseases = []string{
	DiseaseDengue,
	DiseaseMalaria,
	DiseaseChikungunya,
	DiseaseTyphoid,
	DiseaseHepatitisA,
	DiseaseTuberculosis,
	DiseaseCovid19,
	DiseaseInfluenza,
	DiseaseOther,
}

// IsKnownDisease reports whether name is one of Diseases
func IsKnownDisease(name string) bool {
	for _, d := range Diseases {
		if d == name {
			return true
		}
	}
	return false
}

// OccurrenceRecord represents one reported disease case
type OccurrenceRecord struct {
	ID int64 `json:"id" db:"id"`

	DiseaseName string  `json:"disease_name" db:"disease_name"`
	PatientAge  float64 `json:"patient_age" db:"patient_age"`

	// Location
	Address   string  `json:"address,omitempty" db:"address"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`

	AdditionalInfo string    `json:"additional_info,omitempty" db:"additional_info"`
	OccurrenceDate time.Time `json:"occurrence_date" db:"occurrence_date"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CreateOccurrenceRequest is the payload for registering a new case
type CreateOccurrenceRequest struct {
	DiseaseName    string    `json:"disease_name" binding:"required"`
	PatientAge     *float64  `json:"patient_age" binding:"required"`
	Address        string    `json:"address"`
	Latitude       *float64  `json:"latitude" binding:"required"`
	Longitude      *float64  `json:"longitude" binding:"required"`
	AdditionalInfo string    `json:"additional_info"`
	OccurrenceDate time.Time `json:"occurrence_date" binding:"required"`
}

// OccurrenceFilter represents filter parameters for listing cases
type OccurrenceFilter struct {
	DiseaseName string `form:"disease"`
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
}
