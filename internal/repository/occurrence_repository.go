package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/disease-risk-backend-go/internal/database"
	"github.com/jengzang/disease-risk-backend-go/internal/models"
)

const occurrenceColumns = `id, disease_name, patient_age, address, latitude, longitude,
	additional_info, occurrence_date, created_at`

// OccurrenceRepository handles database operations for disease entries
type OccurrenceRepository struct {
	db *sql.DB
}

// NewOccurrenceRepository creates a new occurrence repository
func NewOccurrenceRepository(db *sql.DB) *OccurrenceRepository {
	return &OccurrenceRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOccurrence(s rowScanner) (models.OccurrenceRecord, error) {
	var rec models.OccurrenceRecord
	var lat, lng sql.NullFloat64
	err := s.Scan(
		&rec.ID, &rec.DiseaseName, &rec.PatientAge, &rec.Address, &lat, &lng,
		&rec.AdditionalInfo, &rec.OccurrenceDate, &rec.CreatedAt,
	)
	rec.Latitude = lat.Float64
	rec.Longitude = lng.Float64
	return rec, err
}

// Create inserts a new disease entry and sets its ID and CreatedAt
func (r *OccurrenceRepository) Create(ctx context.Context, rec *models.OccurrenceRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO disease_entries (
			disease_name, patient_age, address, latitude, longitude,
			additional_info, occurrence_date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		rec.DiseaseName,
		rec.PatientAge,
		rec.Address,
		rec.Latitude,
		rec.Longitude,
		rec.AdditionalInfo,
		rec.OccurrenceDate.UTC(),
		rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create disease entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	rec.ID = id
	return nil
}

// GetByID retrieves a disease entry by ID
func (r *OccurrenceRepository) GetByID(ctx context.Context, id int64) (*models.OccurrenceRecord, error) {
	query := `SELECT ` + occurrenceColumns + ` FROM disease_entries WHERE id = ?`

	rec, err := scanOccurrence(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get disease entry: %w", err)
	}

	return &rec, nil
}

// List retrieves disease entries with filtering and pagination, newest first
func (r *OccurrenceRepository) List(ctx context.Context, filter models.OccurrenceFilter) ([]models.OccurrenceRecord, error) {
	query := `SELECT ` + occurrenceColumns + ` FROM disease_entries`

	var conditions []string
	var args []interface{}

	if filter.DiseaseName != "" {
		conditions = append(conditions, "disease_name = ?")
		args = append(args, filter.DiseaseName)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	return r.query(ctx, query, args...)
}

// ListAll returns every entry that has coordinates, oldest first.
// It is the record source for risk model training.
func (r *OccurrenceRepository) ListAll(ctx context.Context) ([]models.OccurrenceRecord, error) {
	query := `SELECT ` + occurrenceColumns + ` FROM disease_entries
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY id`

	return r.query(ctx, query)
}

// Recent returns the most recently created entries
func (r *OccurrenceRepository) Recent(ctx context.Context, limit int) ([]models.OccurrenceRecord, error) {
	return r.List(ctx, models.OccurrenceFilter{Limit: limit})
}

// Count returns the number of entries
func (r *OccurrenceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM disease_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count disease entries: %w", err)
	}
	return count, nil
}

// CountByDisease returns the number of entries per disease, most frequent first
func (r *OccurrenceRepository) CountByDisease(ctx context.Context) ([]models.DiseaseCount, error) {
	query := `SELECT disease_name, COUNT(*) AS count
		FROM disease_entries
		GROUP BY disease_name
		ORDER BY count DESC, disease_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count by disease: %w", err)
	}
	defer rows.Close()

	counts := make([]models.DiseaseCount, 0)
	for rows.Next() {
		var c models.DiseaseCount
		if err := rows.Scan(&c.DiseaseName, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan disease count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// SeedIfEmpty inserts records in one transaction when the table is empty.
// It returns the number of inserted records.
func (r *OccurrenceRepository) SeedIfEmpty(ctx context.Context, records []models.OccurrenceRecord) (int, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	err = database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO disease_entries (
				disease_name, patient_age, address, latitude, longitude,
				additional_info, occurrence_date, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare seed insert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			if _, err := stmt.ExecContext(ctx,
				rec.DiseaseName, rec.PatientAge, rec.Address, rec.Latitude, rec.Longitude,
				rec.AdditionalInfo, rec.OccurrenceDate.UTC(), now,
			); err != nil {
				return fmt.Errorf("failed to insert seed entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(records), nil
}

func (r *OccurrenceRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.OccurrenceRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query disease entries: %w", err)
	}
	defer rows.Close()

	records := make([]models.OccurrenceRecord, 0)
	for rows.Next() {
		rec, err := scanOccurrence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan disease entry: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Name identifies the source in logs
func (r *OccurrenceRepository) Name() string {
	return "sqlite"
}

// Ping checks the database connection
func (r *OccurrenceRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return nil
}
