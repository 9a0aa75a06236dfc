package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS disease_entries (
	id BIGSERIAL PRIMARY KEY,
	disease_name VARCHAR(100) NOT NULL,
	patient_age DOUBLE PRECISION NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	additional_info TEXT NOT NULL DEFAULT '',
	occurrence_date TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_disease_entries_disease_name ON disease_entries (disease_name);
CREATE INDEX IF NOT EXISTS idx_disease_entries_created_at ON disease_entries (created_at);`

// PostgresOccurrenceRepository reads and writes disease entries in a shared
// Postgres database (for example the Supabase instance of the portal)
type PostgresOccurrenceRepository struct {
	db *sqlx.DB
}

// NewPostgresOccurrenceRepository opens a lazy connection pool to connStr.
// No connection is made until the first query or Ping.
func NewPostgresOccurrenceRepository(connStr string) (*PostgresOccurrenceRepository, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(5)
	return &PostgresOccurrenceRepository{db: db}, nil
}

// Name identifies the source in logs
func (r *PostgresOccurrenceRepository) Name() string {
	return "postgres"
}

// Ping checks the connection
func (r *PostgresOccurrenceRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	return nil
}

// EnsureSchema creates the disease_entries table when it is missing
func (r *PostgresOccurrenceRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create postgres schema: %w", err)
	}
	return nil
}

// ListAll returns every entry that has coordinates
func (r *PostgresOccurrenceRepository) ListAll(ctx context.Context) ([]models.OccurrenceRecord, error) {
	const query = `
		SELECT
			id,
			disease_name,
			patient_age,
			COALESCE(address, '') AS address,
			latitude,
			longitude,
			COALESCE(additional_info, '') AS additional_info,
			occurrence_date,
			created_at
		FROM disease_entries
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY id`

	records := make([]models.OccurrenceRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to query disease entries: %w", err)
	}
	return records, nil
}

// Create inserts rec and sets its ID and CreatedAt
func (r *PostgresOccurrenceRepository) Create(ctx context.Context, rec *models.OccurrenceRecord) error {
	const query = `
		INSERT INTO disease_entries (
			disease_name, patient_age, address, latitude, longitude,
			additional_info, occurrence_date
		) VALUES (
			:disease_name, :patient_age, :address, :latitude, :longitude,
			:additional_info, :occurrence_date
		)
		RETURNING id, created_at`

	rows, err := r.db.NamedQueryContext(ctx, query, rec)
	if err != nil {
		return fmt.Errorf("failed to create disease entry: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to create disease entry: %w", err)
		}
		return fmt.Errorf("failed to create disease entry: no row returned")
	}
	if err := rows.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("failed to scan created entry: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (r *PostgresOccurrenceRepository) Close() error {
	return r.db.Close()
}
