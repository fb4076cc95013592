package run

import (
	"time"

	"fraudreport/domain/core"
)

// Manifest captures the audit metadata of one analysis run: enough to
// reproduce the run (seed, dataset fingerprint) and to account for what was
// executed.
type Manifest struct {
	RunID       core.RunID              `json:"run_id"`
	Seed        core.Seed               `json:"seed"`
	Fingerprint core.DatasetFingerprint `json:"dataset_fingerprint"`
	DatasetRows int                     `json:"dataset_rows"`
	TrainRows   int                     `json:"train_rows"`
	TestRows    int                     `json:"test_rows"`
	Folds       int                     `json:"folds"`
	Stages      []string                `json:"stages"`
	StartedAt   time.Time               `json:"started_at"`
	RuntimeMs   int64                   `json:"runtime_ms"`
}

// NewManifest starts a manifest for a fresh run.
func NewManifest(seed core.Seed, fingerprint core.DatasetFingerprint, rows, folds int) *Manifest {
	return &Manifest{
		RunID:       core.RunID(core.NewID()),
		Seed:        seed,
		Fingerprint: fingerprint,
		DatasetRows: rows,
		Folds:       folds,
		StartedAt:   time.Now().UTC(),
	}
}

// RecordStage appends an executed stage name.
func (m *Manifest) RecordStage(name string) {
	m.Stages = append(m.Stages, name)
}

// Finish stamps the total runtime.
func (m *Manifest) Finish() {
	m.RuntimeMs = time.Since(m.StartedAt).Milliseconds()
}
