package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
	"github.com/jengzang/disease-risk-backend-go/internal/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	maxPatientAge    = 150
)

// EntryMirror receives a copy of every created entry, for example a shared
// Postgres database
type EntryMirror interface {
	Create(ctx context.Context, rec *models.OccurrenceRecord) error
}

// OccurrenceService handles business logic for disease entries
type OccurrenceService struct {
	repo   *repository.OccurrenceRepository
	mirror EntryMirror
	logger *slog.Logger
}

// NewOccurrenceService creates a new occurrence service. mirror may be nil.
func NewOccurrenceService(repo *repository.OccurrenceRepository, mirror EntryMirror, logger *slog.Logger) *OccurrenceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OccurrenceService{repo: repo, mirror: mirror, logger: logger}
}

// Create validates req and stores a new entry
func (s *OccurrenceService) Create(ctx context.Context, req models.CreateOccurrenceRequest) (*models.OccurrenceRecord, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	rec := &models.OccurrenceRecord{
		DiseaseName:    strings.TrimSpace(req.DiseaseName),
		PatientAge:     *req.PatientAge,
		Address:        strings.TrimSpace(req.Address),
		Latitude:       *req.Latitude,
		Longitude:      *req.Longitude,
		AdditionalInfo: strings.TrimSpace(req.AdditionalInfo),
		OccurrenceDate: req.OccurrenceDate.UTC(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	if s.mirror != nil {
		mirrored := *rec
		if err := s.mirror.Create(ctx, &mirrored); err != nil {
			s.logger.Warn("failed to mirror disease entry", "id", rec.ID, "error", err)
		}
	}

	s.logger.Info("disease entry created", "id", rec.ID, "disease", rec.DiseaseName)
	return rec, nil
}

func validateCreate(req models.CreateOccurrenceRequest) error {
	if !models.IsKnownDisease(strings.TrimSpace(req.DiseaseName)) {
		return validationError("unknown disease %q", req.DiseaseName)
	}
	if req.PatientAge == nil {
		return validationError("patient_age is required")
	}
	if age := *req.PatientAge; age < 0 || age > maxPatientAge {
		return validationError("patient_age must be between 0 and %d", maxPatientAge)
	}
	if req.Latitude == nil || req.Longitude == nil {
		return validationError("latitude and longitude are required")
	}
	if err := ValidateCoordinates(*req.Latitude, *req.Longitude); err != nil {
		return err
	}
	if req.OccurrenceDate.IsZero() {
		return validationError("occurrence_date is required")
	}
	return nil
}

// ValidateCoordinates checks that lat and lng are WGS84 degrees
func ValidateCoordinates(lat, lng float64) error {
	// range form so NaN is rejected too
	if !(lat >= -90 && lat <= 90) {
		return validationError("latitude must be between -90 and 90")
	}
	if !(lng >= -180 && lng <= 180) {
		return validationError("longitude must be between -180 and 180")
	}
	return nil
}

// Get retrieves a single entry
func (s *OccurrenceService) Get(ctx context.Context, id int64) (*models.OccurrenceRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %d: %w", id, err)
	}
	return rec, nil
}

// List retrieves entries with filtering and pagination
func (s *OccurrenceService) List(ctx context.Context, filter models.OccurrenceFilter) ([]models.OccurrenceRecord, error) {
	if filter.DiseaseName != "" && !models.IsKnownDisease(filter.DiseaseName) {
		return nil, validationError("unknown disease %q", filter.DiseaseName)
	}
	if filter.Limit < 1 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}
