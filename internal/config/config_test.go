package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "MODEL_PATH", "RETRAIN_ON_READ", "RATE_LIMIT", "RATE_WINDOW", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "./data/disease.db", cfg.DBPath)
	assert.Equal(t, "./data/models/risk_model.gob", cfg.ModelPath)
	assert.True(t, cfg.RetrainOnRead)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("RETRAIN_ON_READ", "false")
	t.Setenv("SEED_SAMPLE_DATA", "1")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_WINDOW", "30s")
	t.Setenv("REMOTE_RECORDS_URL", "https://example.supabase.co")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Port)
	assert.False(t, cfg.RetrainOnRead)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RateWindow)
	assert.Equal(t, "https://example.supabase.co", cfg.RemoteRecordsURL)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT", "lots")
	t.Setenv("RETRAIN_ON_READ", "maybe")
	t.Setenv("RATE_WINDOW", "soon")

	assert.Equal(t, 7, getEnvInt("RATE_LIMIT", 7))
	assert.True(t, getEnvBool("RETRAIN_ON_READ", true))
	assert.Equal(t, time.Hour, getEnvDuration("RATE_WINDOW", time.Hour))
}
