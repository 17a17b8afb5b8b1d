package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"wine-classifier-service/internal/core/domain"
	output "wine-classifier-service/internal/core/ports/output"
	"wine-classifier-service/internal/ml/forest"
)

type modelStore struct {
	path string
}

// NewModelStore creates a ModelStore backed by a single file at path.
func NewModelStore(path string) output.ModelStore {
	return &modelStore{path: path}
}

func (s *modelStore) Path() string { return s.path }

// Save writes to a temp file beside the artifact and renames it into place,
// so a concurrent Load sees either the old or the new artifact.
func (s *modelStore) Save(ctx context.Context, model output.TrainableModel) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := model.Save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod artifact: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

func (s *modelStore) Load(ctx context.Context) (output.Classifier, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	model, err := forest.Load(f)
	if err != nil {
		return nil, err
	}
	return model, nil
}

func (s *modelStore) Exists(ctx context.Context) (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}
