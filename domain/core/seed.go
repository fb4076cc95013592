package core

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Seed is the master random seed for a run. Every independent sampling or
// fold-assignment operation derives its own sub-seed from the master seed and
// a stage name, so stages stay reproducible regardless of call order.
type Seed int64

// Stage names used for sub-seed derivation across the pipeline.
const (
	StageSplit       = "split"
	StageUndersample = "undersample"
	StageSubsample   = "subsample"
	StageFolds       = "folds"
	StageFit         = "fit"
)

// Derive returns a deterministic sub-seed for a named stage.
func (s Seed) Derive(stage string) int64 {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", stage, int64(s))))
	return int64(binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63))
}

// DeriveN returns a sub-seed for the n-th independent operation within a
// stage (e.g. one seed per grid candidate or per tree).
func (s Seed) DeriveN(stage string, n int) int64 {
	return Seed(s.Derive(stage)).Derive(fmt.Sprintf("%s#%d", stage, n))
}
