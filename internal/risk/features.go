package risk

import (
	"fmt"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
	"github.com/jengzang/disease-risk-backend-go/internal/spatial"
)

// FeatureColumns is the fixed column order of a feature row
var FeatureColumns = []string{
	"latitude",
	"longitude",
	"patient_age",
	"disease_encoded",
	"month",
	"day_of_year",
	"population_density_proxy",
}

// NumFeatures is the width of a feature row
const NumFeatures = 7

// CategoryIndex maps disease names to integer codes in first-seen order.
// Once fitted it never grows.
type CategoryIndex struct {
	Names []string

	codes map[string]int
}

// NewCategoryIndex fits an index from the disease names of records
func NewCategoryIndex(records []models.OccurrenceRecord) *CategoryIndex {
	idx := &CategoryIndex{}
	idx.Fit(records)
	return idx
}

// Fit records every distinct disease name in first-seen order. It is a no-op on a fitted index.
func (c *CategoryIndex) Fit(records []models.OccurrenceRecord) {
	if c.Fitted() {
		return
	}

	seen := make(map[string]int)
	names := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.DiseaseName]; ok {
			continue
		}
		seen[r.DiseaseName] = len(names)
		names = append(names, r.DiseaseName)
	}

	c.Names = names
	c.codes = seen
}

// Fitted reports whether the index holds at least one category
func (c *CategoryIndex) Fitted() bool {
	return len(c.Names) > 0
}

// Encode returns the code of name
func (c *CategoryIndex) Encode(name string) (int, error) {
	if c.codes == nil {
		// decoded bundles carry only Names
		c.codes = make(map[string]int, len(c.Names))
		for i, n := range c.Names {
			c.codes[n] = i
		}
	}

	code, ok := c.codes[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return code, nil
}

// clone returns an index safe to share with concurrent readers
func (c *CategoryIndex) clone() CategoryIndex {
	out := CategoryIndex{
		Names: append([]string(nil), c.Names...),
		codes: make(map[string]int, len(c.Names)),
	}
	for i, n := range out.Names {
		out.codes[n] = i
	}
	return out
}

// BuildFeatures turns records into one feature row per record.
//
// The population density proxy is 1/(km to batch centroid + 1), so it is only
// comparable within a single batch; a one-record batch always yields 1.
// An unfitted idx is fitted from the batch first.
func BuildFeatures(records []models.OccurrenceRecord, idx *CategoryIndex) ([][]float64, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	points := make([]spatial.Point, len(records))
	for i, r := range records {
		points[i] = spatial.Point{Lat: r.Latitude, Lon: r.Longitude}
	}
	center := spatial.Centroid(points)

	idx.Fit(records)

	rows := make([][]float64, len(records))
	for i, r := range records {
		code, err := idx.Encode(r.DiseaseName)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		proxy := 1 / (spatial.DistanceKm(points[i], center) + 1)

		rows[i] = []float64{
			r.Latitude,
			r.Longitude,
			r.PatientAge,
			float64(code),
			float64(r.OccurrenceDate.Month()),
			float64(r.OccurrenceDate.YearDay()),
			proxy,
		}
	}

	return rows, nil
}
