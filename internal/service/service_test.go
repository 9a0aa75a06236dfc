package service

import (
	"context"
	"errors"
	"io"
	"math"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/disease-risk-backend-go/internal/database"
	"github.com/jengzang/disease-risk-backend-go/internal/models"
	"github.com/jengzang/disease-risk-backend-go/internal/repository"
	"github.com/jengzang/disease-risk-backend-go/internal/risk"
)

var fixedNow = time.Date(2025, time.July, 15, 9, 30, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	entries     *repository.OccurrenceRepository
	predictions *repository.RiskPredictionRepository
	model       *risk.Model
	dir         string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	db, err := database.Open(database.Config{Path: filepath.Join(dir, "disease.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	entries := repository.NewOccurrenceRepository(db)
	return &fixture{
		entries:     entries,
		predictions: repository.NewRiskPredictionRepository(db),
		model: risk.NewModel(entries, filepath.Join(dir, "model.gob"),
			risk.WithLogger(quietLogger()),
			risk.WithClock(func() time.Time { return fixedNow }),
			risk.WithSampler(risk.NewSampler(7)),
			risk.WithSyntheticGenerator(risk.NewSyntheticGenerator(7)),
		),
		dir: dir,
	}
}

func f64(v float64) *float64 { return &v }

func validRequest() models.CreateOccurrenceRequest {
	return models.CreateOccurrenceRequest{
		DiseaseName:    models.DiseaseDengue,
		PatientAge:     f64(29),
		Address:        "  MG Road ",
		Latitude:       f64(12.9716),
		Longitude:      f64(77.5946),
		OccurrenceDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

type recordingMirror struct {
	created []models.OccurrenceRecord
	err     error
}

func (m *recordingMirror) Create(_ context.Context, rec *models.OccurrenceRecord) error {
	m.created = append(m.created, *rec)
	return m.err
}

func TestOccurrenceServiceCreate(t *testing.T) {
	fx := newFixture(t)
	mirror := &recordingMirror{err: errors.New("offline")}
	svc := NewOccurrenceService(fx.entries, mirror, quietLogger())

	rec, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, "MG Road", rec.Address)

	// mirror failures do not fail the request
	require.Len(t, mirror.created, 1)
	assert.Equal(t, rec.ID, mirror.created[0].ID)

	got, err := svc.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DiseaseDengue, got.DiseaseName)
}

func TestOccurrenceServiceValidation(t *testing.T) {
	svc := NewOccurrenceService(newFixture(t).entries, nil, quietLogger())

	tests := []struct {
		name   string
		mutate func(r *models.CreateOccurrenceRequest)
	}{
		{"unknown disease", func(r *models.CreateOccurrenceRequest) { r.DiseaseName = "plague" }},
		{"missing age", func(r *models.CreateOccurrenceRequest) { r.PatientAge = nil }},
		{"negative age", func(r *models.CreateOccurrenceRequest) { r.PatientAge = f64(-1) }},
		{"age too high", func(r *models.CreateOccurrenceRequest) { r.PatientAge = f64(151) }},
		{"latitude out of range", func(r *models.CreateOccurrenceRequest) { r.Latitude = f64(91) }},
		{"longitude out of range", func(r *models.CreateOccurrenceRequest) { r.Longitude = f64(-181) }},
		{"latitude NaN", func(r *models.CreateOccurrenceRequest) { r.Latitude = f64(math.NaN()) }},
		{"missing longitude", func(r *models.CreateOccurrenceRequest) { r.Longitude = nil }},
		{"missing date", func(r *models.CreateOccurrenceRequest) { r.OccurrenceDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestOccurrenceServiceGetMissing(t *testing.T) {
	svc := NewOccurrenceService(newFixture(t).entries, nil, quietLogger())

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOccurrenceServiceList(t *testing.T) {
	svc := NewOccurrenceService(newFixture(t).entries, nil, quietLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)
	}

	entries, err := svc.List(ctx, models.OccurrenceFilter{Limit: -5, Offset: -1})
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = svc.List(ctx, models.OccurrenceFilter{DiseaseName: "plague"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRiskServiceRiskMap(t *testing.T) {
	fx := newFixture(t)
	svc := NewRiskService(fx.model, fx.entries, fx.predictions, true, quietLogger())

	areas, err := svc.RiskMap(context.Background(), 12.97, 77.59, models.DiseaseDengue)
	require.NoError(t, err)
	require.Len(t, areas, 4)
	for _, a := range areas {
		assert.GreaterOrEqual(t, a.RiskScore, 0.0)
		assert.LessOrEqual(t, a.RiskScore, 1.0)
	}
	// empty store trains on filler data
	assert.True(t, fx.model.IsTrained())

	_, err = svc.RiskMap(context.Background(), 120, 0, models.DiseaseDengue)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.RiskMap(context.Background(), math.NaN(), 77.59, models.DiseaseDengue)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.RiskMap(context.Background(), 12.97, math.Inf(1), models.DiseaseDengue)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.RiskMap(context.Background(), 1, 1, " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRiskServiceEntryRiskStoresPredictions(t *testing.T) {
	fx := newFixture(t)
	occurrences := NewOccurrenceService(fx.entries, nil, quietLogger())
	svc := NewRiskService(fx.model, fx.entries, fx.predictions, false, quietLogger())
	ctx := context.Background()

	rec, err := occurrences.Create(ctx, validRequest())
	require.NoError(t, err)

	result, err := svc.EntryRisk(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, result.Entry.ID)
	require.Len(t, result.RiskAreas, 4)

	history, err := svc.History(ctx, rec.ID)
	require.NoError(t, err)
	assert.Len(t, history, 4)

	_, err = svc.EntryRisk(ctx, rec.ID+100)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRiskServiceAbortedRequestKeepsModel(t *testing.T) {
	fx := newFixture(t)
	occurrences := NewOccurrenceService(fx.entries, nil, quietLogger())
	svc := NewRiskService(fx.model, fx.entries, fx.predictions, true, quietLogger())

	for i := 0; i < 12; i++ {
		_, err := occurrences.Create(context.Background(), validRequest())
		require.NoError(t, err)
	}
	before, err := svc.Train(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, before.Metrics.Records)
	require.Equal(t, 0, before.Metrics.Synthetic)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	areas, err := svc.RiskMap(ctx, 12.97, 77.59, models.DiseaseDengue)
	require.NoError(t, err)
	assert.Len(t, areas, 4)

	after := svc.ModelInfo()
	assert.Equal(t, before.RunID, after.RunID)
	assert.Equal(t, []string{models.DiseaseDengue}, after.Categories)
	assert.Equal(t, 0, after.Metrics.Synthetic)
}

func TestRiskServiceTrain(t *testing.T) {
	fx := newFixture(t)
	svc := NewRiskService(fx.model, fx.entries, fx.predictions, false, quietLogger())

	assert.Equal(t, risk.StateUntrained, svc.ModelInfo().State)

	info, err := svc.Train(context.Background())
	require.NoError(t, err)
	assert.Equal(t, risk.StateTrained, info.State)
	assert.NotEmpty(t, info.RunID)
	assert.FileExists(t, filepath.Join(fx.dir, "model.gob"))
}

func TestRiskServiceTrainFailure(t *testing.T) {
	fx := newFixture(t)
	model := risk.NewModel(fx.entries, "",
		risk.WithLogger(quietLogger()),
		risk.WithSyntheticCount(0),
	)
	svc := NewRiskService(model, fx.entries, fx.predictions, false, quietLogger())

	info, err := svc.Train(context.Background())
	assert.ErrorIs(t, err, ErrTrainingFailed)
	assert.Equal(t, risk.StateUntrained, info.State)
}

func TestStatsServiceDashboard(t *testing.T) {
	fx := newFixture(t)
	occurrences := NewOccurrenceService(fx.entries, nil, quietLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := occurrences.Create(ctx, validRequest())
		require.NoError(t, err)
	}
	far := validRequest()
	far.DiseaseName = models.DiseaseMalaria
	far.Latitude, far.Longitude = f64(19.076), f64(72.8777)
	_, err := occurrences.Create(ctx, far)
	require.NoError(t, err)

	dash, err := NewStatsService(fx.entries).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), dash.TotalEntries)
	require.Len(t, dash.DiseaseCounts, 2)
	assert.Equal(t, models.DiseaseDengue, dash.DiseaseCounts[0].DiseaseName)
	assert.Len(t, dash.RecentEntries, 4)
	require.Len(t, dash.Hotspots, 2)
	assert.Equal(t, 3, dash.Hotspots[0].Count)
	assert.InDelta(t, 12.9716, dash.Hotspots[0].Lat, 1e-9)

	// only the newest entries are listed
	for i := 0; i < 3; i++ {
		_, err := occurrences.Create(ctx, validRequest())
		require.NoError(t, err)
	}
	dash, err = NewStatsService(fx.entries).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), dash.TotalEntries)
	assert.Len(t, dash.RecentEntries, 5)
}
