package risk

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
)

var fixedNow = time.Date(2025, time.July, 15, 9, 30, 0, 0, time.UTC)

type stubSource struct {
	mu      sync.Mutex
	records []models.OccurrenceRecord
	err     error
	calls   int
}

func (s *stubSource) ListAll(ctx context.Context) ([]models.OccurrenceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.OccurrenceRecord(nil), s.records...), nil
}

func (s *stubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var errSourceDown = errors.New("source unavailable")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// dengueYear returns n dengue cases at one city spread over a year
func dengueYear(n int) []models.OccurrenceRecord {
	out := make([]models.OccurrenceRecord, 0, n)
	start := time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		out = append(out, models.OccurrenceRecord{
			DiseaseName:    models.DiseaseDengue,
			PatientAge:     float64(4 + (i*13)%80),
			Latitude:       12.9716,
			Longitude:      77.5946,
			OccurrenceDate: start.AddDate(0, 0, i*18),
		})
	}
	return out
}

// mixedRecords returns n cases across diseases and two cities
func mixedRecords(n int) []models.OccurrenceRecord {
	cities := [][2]float64{{13.0827, 80.2707}, {19.0760, 72.8777}}
	out := make([]models.OccurrenceRecord, 0, n)
	start := time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := cities[i%len(cities)]
		out = append(out, models.OccurrenceRecord{
			DiseaseName:    models.Diseases[i%len(models.Diseases)],
			PatientAge:     float64(2 + (i*17)%85),
			Latitude:       c[0] + float64(i%7)*0.01,
			Longitude:      c[1] - float64(i%5)*0.01,
			OccurrenceDate: start.AddDate(0, 0, i*11),
		})
	}
	return out
}

func newTestModel(source RecordSource, path string, opts ...Option) *Model {
	base := []Option{
		WithLogger(quietLogger()),
		WithSampler(NewSampler(7)),
		WithSyntheticGenerator(NewSyntheticGenerator(11)),
		WithClock(func() time.Time { return fixedNow }),
	}
	return NewModel(source, path, append(base, opts...)...)
}
