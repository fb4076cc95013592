// Package testkit provides synthetic datasets and in-memory fakes for
// exercising the pipeline without the real transaction file.
package testkit

import (
	"context"
	"math/rand"
	"sync"

	"fraudreport/domain/dataset"
	"fraudreport/domain/experiment"
	"fraudreport/domain/run"
)

// ImbalancedDataset generates a labeled dataset with the given class counts
// and feature count. Feature values are drawn from class-shifted normals, so
// the classes are statistically separable but overlapping.
func ImbalancedDataset(fraud, genuine, features int, seed int64) *dataset.Dataset {
	rng := rand.New(rand.NewSource(seed))
	columns := make([]string, features)
	for i := range columns {
		columns[i] = columnName(i)
	}

	records := make([]dataset.Record, 0, fraud+genuine)
	for i := 0; i < genuine; i++ {
		records = append(records, dataset.Record{Features: row(rng, features, 0), Label: dataset.LabelGenuine})
	}
	for i := 0; i < fraud; i++ {
		records = append(records, dataset.Record{Features: row(rng, features, 2), Label: dataset.LabelFraud})
	}
	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	return &dataset.Dataset{Columns: columns, Records: records}
}

// SeparableDataset generates a dataset whose classes are far apart in
// feature space, so any sensible classifier should discriminate them
// near-perfectly.
func SeparableDataset(perClass, features int, seed int64) *dataset.Dataset {
	rng := rand.New(rand.NewSource(seed))
	columns := make([]string, features)
	for i := range columns {
		columns[i] = columnName(i)
	}

	records := make([]dataset.Record, 0, 2*perClass)
	for i := 0; i < perClass; i++ {
		records = append(records, dataset.Record{Features: row(rng, features, -5), Label: dataset.LabelGenuine})
		records = append(records, dataset.Record{Features: row(rng, features, 5), Label: dataset.LabelFraud})
	}
	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	return &dataset.Dataset{Columns: columns, Records: records}
}

func row(rng *rand.Rand, features int, shift float64) []float64 {
	out := make([]float64, features)
	for i := range out {
		out[i] = rng.NormFloat64() + shift
	}
	return out
}

func columnName(i int) string {
	return "V" + string(rune('0'+i/10)) + string(rune('0'+i%10))
}

// InMemoryLedger is a ResultLedger fake recording everything it receives.
type InMemoryLedger struct {
	mu         sync.Mutex
	Runs       []*run.Manifest
	CVResults  map[string][]experiment.CVResult
	Confusions map[string][]experiment.ConfusionMatrix
	Finished   []string
}

// NewInMemoryLedger creates an empty ledger fake.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		CVResults:  make(map[string][]experiment.CVResult),
		Confusions: make(map[string][]experiment.ConfusionMatrix),
	}
}

func (l *InMemoryLedger) CreateRun(ctx context.Context, manifest *run.Manifest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Runs = append(l.Runs, manifest)
	return nil
}

func (l *InMemoryLedger) SaveCVResult(ctx context.Context, runID string, subset string, result experiment.CVResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.CVResults[subset] = append(l.CVResults[subset], result)
	return nil
}

func (l *InMemoryLedger) SaveConfusion(ctx context.Context, runID string, family string, m experiment.ConfusionMatrix) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Confusions[family] = append(l.Confusions[family], m)
	return nil
}

func (l *InMemoryLedger) FinishRun(ctx context.Context, manifest *run.Manifest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Finished = append(l.Finished, manifest.RunID.String())
	return nil
}
