package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"wine-classifier-service/internal/core/domain"
	output "wine-classifier-service/internal/core/ports/output"
)

const createPredictionsTable = `
	CREATE TABLE IF NOT EXISTS predictions (
		id          UUID PRIMARY KEY,
		created_at  TIMESTAMPTZ NOT NULL,
		request_id  TEXT NOT NULL DEFAULT '',
		input       DOUBLE PRECISION[] NOT NULL,
		class_index INTEGER NOT NULL,
		label       TEXT NOT NULL
	)
`

type predictionRepo struct {
	pool *pgxpool.Pool
}

// NewPredictionRepository creates a PredictionRecorder that stores every
// prediction as a row in the predictions table.
func NewPredictionRepository(pool *pgxpool.Pool) output.PredictionRecorder {
	return &predictionRepo{pool: pool}
}

// EnsureSchema creates the predictions table when it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createPredictionsTable); err != nil {
		return fmt.Errorf("create predictions table: %w", err)
	}
	return nil
}

func (r *predictionRepo) Record(ctx context.Context, p *domain.Prediction) error {
	query := `
		INSERT INTO predictions (id, created_at, request_id, input, class_index, label)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.CreatedAt, p.RequestID,
		[]float64(p.Input), p.ClassIndex, p.Label,
	)
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}
