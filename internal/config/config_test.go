package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/app/models/wine_model.json.gz", cfg.Model.Path)
	assert.Empty(t, cfg.Training.DatasetPath)
	assert.True(t, cfg.Model.Watch)
	assert.Equal(t, 500*time.Millisecond, cfg.Model.WatchDebounce)
	assert.Equal(t, "/app/logs/predictions.log", cfg.PredictionLog.Path)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 0.2, cfg.Training.TestRatio)
	assert.Equal(t, int64(42), cfg.Training.Seed)
	assert.Equal(t, 100, cfg.Training.Estimators)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MODEL_PATH", "/tmp/model.gz")
	t.Setenv("MODEL_WATCH", "false")
	t.Setenv("DATABASE_ENABLED", "true")
	t.Setenv("DATABASE_HOST", "db")
	t.Setenv("TRAIN_SEED", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/model.gz", cfg.Model.Path)
	assert.False(t, cfg.Model.Watch)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://postgres:@db:5432/wine_classifier?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, int64(7), cfg.Training.Seed)
}

func TestLoad_BadDebounce(t *testing.T) {
	t.Setenv("MODEL_WATCH_DEBOUNCE", "soon")

	_, err := Load()
	assert.Error(t, err)
}
