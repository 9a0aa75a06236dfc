package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/disease-risk-backend-go/internal/database"
	"github.com/jengzang/disease-risk-backend-go/internal/models"
)

// RiskPredictionRepository stores the risk areas computed for an entry
type RiskPredictionRepository struct {
	db *sql.DB
}

// NewRiskPredictionRepository creates a new risk prediction repository
func NewRiskPredictionRepository(db *sql.DB) *RiskPredictionRepository {
	return &RiskPredictionRepository{db: db}
}

// SaveBatch stores areas for entryID in one transaction
func (r *RiskPredictionRepository) SaveBatch(ctx context.Context, entryID int64, areas []models.RiskArea) error {
	now := time.Now().UTC()

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO risk_predictions (
				disease_entry_id, predicted_lat, predicted_lng,
				risk_score, risk_radius, risk_level, prediction_date
			) VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare risk prediction insert: %w", err)
		}
		defer stmt.Close()

		for _, a := range areas {
			if _, err := stmt.ExecContext(ctx, entryID, a.Lat, a.Lng, a.RiskScore, a.Radius, a.RiskLevel, now); err != nil {
				return fmt.Errorf("failed to insert risk prediction: %w", err)
			}
		}
		return nil
	})
}

// ListByEntry returns the stored predictions of an entry, newest first
func (r *RiskPredictionRepository) ListByEntry(ctx context.Context, entryID int64) ([]models.RiskPrediction, error) {
	query := `SELECT id, disease_entry_id, predicted_lat, predicted_lng,
			risk_score, risk_radius, risk_level, prediction_date
		FROM risk_predictions
		WHERE disease_entry_id = ?
		ORDER BY prediction_date DESC, id`

	rows, err := r.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]models.RiskPrediction, 0)
	for rows.Next() {
		var p models.RiskPrediction
		if err := rows.Scan(
			&p.ID, &p.EntryID, &p.PredictedLat, &p.PredictedLng,
			&p.RiskScore, &p.RiskRadius, &p.RiskLevel, &p.PredictionDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan risk prediction: %w", err)
		}
		predictions = append(predictions, p)
	}

	return predictions, rows.Err()
}
