package ports

import (
	"context"

	"fraudreport/domain/experiment"
	"fraudreport/domain/run"
)

// ResultLedger persists run results for later inspection. The pipeline works
// without one; persistence is an optional side channel, never a control path.
type ResultLedger interface {
	// CreateRun records the manifest of a new run.
	CreateRun(ctx context.Context, manifest *run.Manifest) error

	// SaveCVResult records one cross-validated score under a named training
	// subset ("undersampled", "subsampled", ...).
	SaveCVResult(ctx context.Context, runID string, subset string, result experiment.CVResult) error

	// SaveConfusion records a holdout confusion matrix for a model family.
	SaveConfusion(ctx context.Context, runID string, family string, m experiment.ConfusionMatrix) error

	// FinishRun stamps the run's runtime after the pipeline completes.
	FinishRun(ctx context.Context, manifest *run.Manifest) error
}
