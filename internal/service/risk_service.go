package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
	"github.com/jengzang/disease-risk-backend-go/internal/repository"
	"github.com/jengzang/disease-risk-backend-go/internal/risk"
)

// RiskService exposes the risk model to the HTTP layer
type RiskService struct {
	model         *risk.Model
	entries       *repository.OccurrenceRepository
	predictions   *repository.RiskPredictionRepository
	retrainOnRead bool
	logger        *slog.Logger
}

// NewRiskService creates a new risk service. With retrainOnRead the model is
// refit on every risk request so new entries are reflected immediately.
func NewRiskService(
	model *risk.Model,
	entries *repository.OccurrenceRepository,
	predictions *repository.RiskPredictionRepository,
	retrainOnRead bool,
	logger *slog.Logger,
) *RiskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RiskService{
		model:         model,
		entries:       entries,
		predictions:   predictions,
		retrainOnRead: retrainOnRead,
		logger:        logger,
	}
}

// RiskMap returns the four risk areas around a point for disease
func (s *RiskService) RiskMap(ctx context.Context, lat, lng float64, disease string) ([]models.RiskArea, error) {
	if err := ValidateCoordinates(lat, lng); err != nil {
		return nil, err
	}
	disease = strings.TrimSpace(disease)
	if disease == "" {
		return nil, validationError("disease is required")
	}

	s.refresh(ctx)
	return s.model.PredictRiskAreas(ctx, lat, lng, disease), nil
}

// EntryRisk predicts and stores the risk areas around a stored entry
func (s *RiskService) EntryRisk(ctx context.Context, id int64) (*models.EntryRisk, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %d: %w", id, err)
	}

	s.refresh(ctx)
	areas := s.model.PredictRiskAreas(ctx, entry.Latitude, entry.Longitude, entry.DiseaseName)

	if s.predictions != nil {
		if err := s.predictions.SaveBatch(ctx, entry.ID, areas); err != nil {
			s.logger.Warn("failed to store risk predictions", "entry_id", entry.ID, "error", err)
		}
	}

	return &models.EntryRisk{Entry: entry, RiskAreas: areas}, nil
}

// History returns the stored predictions of an entry
func (s *RiskService) History(ctx context.Context, id int64) ([]models.RiskPrediction, error) {
	if _, err := s.entries.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get entry %d: %w", id, err)
	}
	predictions, err := s.predictions.ListByEntry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return predictions, nil
}

// Train refits the model now
func (s *RiskService) Train(ctx context.Context) (risk.ModelInfo, error) {
	if !s.model.Train(ctx) {
		return s.model.Info(), ErrTrainingFailed
	}
	return s.model.Info(), nil
}

// ModelInfo describes the current model
func (s *RiskService) ModelInfo() risk.ModelInfo {
	return s.model.Info()
}

func (s *RiskService) refresh(ctx context.Context) {
	if !s.retrainOnRead {
		return
	}
	if !s.model.Train(ctx) {
		s.logger.Warn("retrain before prediction failed, using previous model", "state", s.model.State())
	}
}
