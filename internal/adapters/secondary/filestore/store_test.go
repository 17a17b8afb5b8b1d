package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wine-classifier-service/internal/core/domain"
	"wine-classifier-service/internal/ml/forest"
	"wine-classifier-service/internal/testutil"
)

func fittedForest(t *testing.T) *forest.RandomForest {
	t.Helper()
	ds := testutil.SyntheticWine(1)
	f := forest.New(forest.WithEstimators(5))
	require.NoError(t, f.Fit(context.Background(), ds.Features, ds.Labels))
	return f
}

func TestModelStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "models", "wine_model.json.gz")
	store := NewModelStore(path)

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

	require.NoError(t, store.Save(ctx, fittedForest(t)))

	exists, err = store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	classifier, err := store.Load(ctx)
	require.NoError(t, err)
	label, err := classifier.Predict(testutil.ClassMean(0))
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestModelStore_SaveUnfittedKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wine_model.json.gz")
	store := NewModelStore(path)

	require.NoError(t, store.Save(ctx, fittedForest(t)))
	assert.ErrorIs(t, store.Save(ctx, forest.New()), domain.ErrModelNotTrained)

	_, err := store.Load(ctx)
	assert.NoError(t, err)
}

func TestModelStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wine_model.json.gz")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	_, err := NewModelStore(path).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidArtifact)
}

func TestModelStore_ExistsDirectory(t *testing.T) {
	exists, err := NewModelStore(t.TempDir()).Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}
