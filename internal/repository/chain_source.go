package repository

import (
	"context"
	"log/slog"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
)

// NamedSource is a record source that can identify itself in logs
type NamedSource interface {
	Name() string
	ListAll(ctx context.Context) ([]models.OccurrenceRecord, error)
}

// ChainSource asks each source in order and returns the first non-empty
// result. Failing sources are logged and skipped.
type ChainSource struct {
	sources []NamedSource
	logger  *slog.Logger
}

// NewChainSource creates a chain over sources
func NewChainSource(logger *slog.Logger, sources ...NamedSource) *ChainSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChainSource{sources: sources, logger: logger}
}

// ListAll implements risk.RecordSource
func (c *ChainSource) ListAll(ctx context.Context) ([]models.OccurrenceRecord, error) {
	var lastErr error
	for _, src := range c.sources {
		records, err := src.ListAll(ctx)
		if err != nil {
			c.logger.Warn("record source failed", "source", src.Name(), "error", err)
			lastErr = err
			continue
		}
		if len(records) > 0 {
			c.logger.Debug("records loaded", "source", src.Name(), "count", len(records))
			return records, nil
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return []models.OccurrenceRecord{}, nil
}
