package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fraudreport/domain/experiment"
	"fraudreport/domain/run"
	"fraudreport/ports"
)

// resultLedger implements the ResultLedger interface over Postgres.
type resultLedger struct {
	db *sqlx.DB
}

// NewResultLedger creates a new Postgres-backed result ledger.
func NewResultLedger(db *sqlx.DB) ports.ResultLedger {
	return &resultLedger{db: db}
}

// EnsureSchema creates the ledger tables when missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed BIGINT NOT NULL,
			dataset_fingerprint TEXT NOT NULL,
			dataset_rows INT NOT NULL,
			train_rows INT NOT NULL,
			test_rows INT NOT NULL,
			folds INT NOT NULL,
			stages JSONB,
			started_at TIMESTAMPTZ NOT NULL,
			runtime_ms BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS cv_results (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			subset TEXT NOT NULL,
			family TEXT NOT NULL,
			config TEXT NOT NULL,
			mean_auc DOUBLE PRECISION NOT NULL,
			fold_aucs JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS confusion_matrices (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			family TEXT NOT NULL,
			true_positive INT NOT NULL,
			false_positive INT NOT NULL,
			true_negative INT NOT NULL,
			false_negative INT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure ledger schema: %w", err)
		}
	}
	return nil
}

// CreateRun records the manifest of a new run.
func (r *resultLedger) CreateRun(ctx context.Context, manifest *run.Manifest) error {
	stagesJSON, err := json.Marshal(manifest.Stages)
	if err != nil {
		return fmt.Errorf("failed to marshal stages: %w", err)
	}

	query := `INSERT INTO runs (
		id, seed, dataset_fingerprint, dataset_rows, train_rows, test_rows, folds, stages, started_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		manifest.RunID.String(), int64(manifest.Seed), manifest.Fingerprint.String(),
		manifest.DatasetRows, manifest.TrainRows, manifest.TestRows, manifest.Folds,
		stagesJSON, manifest.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// SaveCVResult records one cross-validated score.
func (r *resultLedger) SaveCVResult(ctx context.Context, runID string, subset string, result experiment.CVResult) error {
	foldJSON, err := json.Marshal(result.FoldAUCs)
	if err != nil {
		return fmt.Errorf("failed to marshal fold scores: %w", err)
	}

	query := `INSERT INTO cv_results (run_id, subset, family, config, mean_auc, fold_aucs)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		runID, subset, result.Config.Family.String(), result.Config.Key(), result.MeanAUC, foldJSON)
	if err != nil {
		return fmt.Errorf("failed to save cv result: %w", err)
	}
	return nil
}

// SaveConfusion records a holdout confusion matrix.
func (r *resultLedger) SaveConfusion(ctx context.Context, runID string, family string, m experiment.ConfusionMatrix) error {
	query := `INSERT INTO confusion_matrices (
		run_id, family, true_positive, false_positive, true_negative, false_negative
	) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		runID, family, m.TruePositive, m.FalsePositive, m.TrueNegative, m.FalseNegative)
	if err != nil {
		return fmt.Errorf("failed to save confusion matrix: %w", err)
	}
	return nil
}

// FinishRun stamps the run's runtime.
func (r *resultLedger) FinishRun(ctx context.Context, manifest *run.Manifest) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE runs SET runtime_ms = $1 WHERE id = $2`,
		manifest.RuntimeMs, manifest.RunID.String())
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}
