package harness

import (
	"errors"
	"math"
	"testing"

	"fraudreport/domain/core"
)

func TestAUC_PerfectRanking(t *testing.T) {
	scores := []float64{0.9, 0.8, 0.2, 0.1}
	labels := []int{1, 1, 0, 0}

	auc, err := AUC(scores, labels)
	if err != nil {
		t.Fatalf("AUC failed: %v", err)
	}
	if math.Abs(auc-1.0) > 1e-9 {
		t.Errorf("expected AUC 1.0 for perfect ranking, got %v", auc)
	}
}

func TestAUC_ReversedRanking(t *testing.T) {
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	labels := []int{1, 1, 0, 0}

	auc, err := AUC(scores, labels)
	if err != nil {
		t.Fatalf("AUC failed: %v", err)
	}
	if math.Abs(auc) > 1e-9 {
		t.Errorf("expected AUC 0.0 for reversed ranking, got %v", auc)
	}
}

func TestAUC_RandomRankingIsHalf(t *testing.T) {
	// A constant score ranks every pair as a tie.
	scores := []float64{0.5, 0.5, 0.5, 0.5}
	labels := []int{1, 0, 1, 0}

	auc, err := AUC(scores, labels)
	if err != nil {
		t.Fatalf("AUC failed: %v", err)
	}
	if math.Abs(auc-0.5) > 1e-9 {
		t.Errorf("expected AUC 0.5 for uninformative scores, got %v", auc)
	}
}

func TestAUC_SingleClassIsDegenerate(t *testing.T) {
	for _, labels := range [][]int{{1, 1, 1}, {0, 0, 0}} {
		if _, err := AUC([]float64{0.1, 0.5, 0.9}, labels); !errors.Is(err, core.ErrDegenerateFold) {
			t.Errorf("labels %v: expected degenerate fold error, got %v", labels, err)
		}
	}
}

func TestAUC_DoesNotMutateScores(t *testing.T) {
	scores := []float64{0.9, 0.1, 0.8, 0.2}
	labels := []int{1, 0, 1, 0}

	if _, err := AUC(scores, labels); err != nil {
		t.Fatalf("AUC failed: %v", err)
	}
	want := []float64{0.9, 0.1, 0.8, 0.2}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("scores mutated at %d: got %v", i, scores[i])
		}
	}
}
