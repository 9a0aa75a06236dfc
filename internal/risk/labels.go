package risk

import (
	"github.com/jengzang/disease-risk-backend-go/internal/models"
	"github.com/jengzang/disease-risk-backend-go/internal/stats"
)

// Heuristic training target. There is no observed outcome to learn from, so
// the regressor is fitted against this score instead.
var baseRisk = map[string]float64{
	models.DiseaseDengue:       0.85,
	models.DiseaseMalaria:      0.80,
	models.DiseaseChikungunya:  0.75,
	models.DiseaseCovid19:      0.90,
	models.DiseaseTuberculosis: 0.70,
	models.DiseaseTyphoid:      0.65,
	models.DiseaseHepatitisA:   0.60,
	models.DiseaseInfluenza:    0.55,
	models.DiseaseOther:        0.50,
}

const (
	defaultBaseRisk    = 0.50
	monsoonMultiplier  = 1.3
	vulnerableAgeBoost = 1.2
)

// vector-borne diseases peak during the June-September monsoon
var monsoonDiseases = map[string]bool{
	models.DiseaseDengue:      true,
	models.DiseaseMalaria:     true,
	models.DiseaseChikungunya: true,
}

// BaseRisk returns the base risk of a disease, 0.5 for unknown names
func BaseRisk(disease string) float64 {
	if v, ok := baseRisk[disease]; ok {
		return v
	}
	return defaultBaseRisk
}

// SeasonalMultiplier returns 1.3 for vector-borne diseases in months 6-9
func SeasonalMultiplier(disease string, month int) float64 {
	if month >= 6 && month <= 9 && monsoonDiseases[disease] {
		return monsoonMultiplier
	}
	return 1.0
}

// AgeMultiplier returns 1.2 for children under 10 and adults over 60
func AgeMultiplier(age float64) float64 {
	if age < 10 || age > 60 {
		return vulnerableAgeBoost
	}
	return 1.0
}

// SynthesizeLabel computes the heuristic risk score of one record
func SynthesizeLabel(r models.OccurrenceRecord) float64 {
	score := BaseRisk(r.DiseaseName) *
		SeasonalMultiplier(r.DiseaseName, int(r.OccurrenceDate.Month())) *
		AgeMultiplier(r.PatientAge)
	return stats.Clamp(score, 0, 1)
}

// SynthesizeLabels computes one heuristic risk score per record
func SynthesizeLabels(records []models.OccurrenceRecord) []float64 {
	scores := make([]float64, len(records))
	for i, r := range records {
		scores[i] = SynthesizeLabel(r)
	}
	return scores
}
