package dataset

import (
	"errors"
	"testing"

	"fraudreport/domain/core"
)

func sample() *Dataset {
	return &Dataset{
		Columns: []string{"V1", "Amount"},
		Records: []Record{
			{Features: []float64{0.1, 10}, Label: LabelGenuine},
			{Features: []float64{0.2, 20}, Label: LabelFraud},
			{Features: []float64{0.3, 30}, Label: LabelGenuine},
			{Features: []float64{0.4, 40}, Label: LabelGenuine},
		},
	}
}

func TestCountsAndMinority(t *testing.T) {
	ds := sample()

	fraud, genuine := ds.Counts()
	if fraud != 1 || genuine != 3 {
		t.Errorf("counts %d/%d, want 1/3", fraud, genuine)
	}
	if ds.MinorityLabel() != LabelFraud {
		t.Errorf("minority %q, want fraud", ds.MinorityLabel())
	}

	// Ties resolve to the positive class.
	tied := &Dataset{Records: []Record{
		{Label: LabelFraud}, {Label: LabelGenuine},
	}}
	if tied.MinorityLabel() != LabelFraud {
		t.Errorf("tie resolved to %q, want fraud", tied.MinorityLabel())
	}
}

func TestColumnValues(t *testing.T) {
	ds := sample()

	amounts, err := ds.ColumnValues("Amount")
	if err != nil {
		t.Fatalf("column lookup failed: %v", err)
	}
	want := []float64{10, 20, 30, 40}
	for i := range want {
		if amounts[i] != want[i] {
			t.Errorf("amount[%d] = %v, want %v", i, amounts[i], want[i])
		}
	}

	if _, err := ds.ColumnValues("Missing"); !errors.Is(err, core.ErrSchemaMismatch) {
		t.Errorf("expected schema mismatch error, got %v", err)
	}
}

func TestSelectSharesRecords(t *testing.T) {
	ds := sample()

	sub := ds.Select([]int{2, 0})
	if sub.Len() != 2 {
		t.Fatalf("selected %d records, want 2", sub.Len())
	}
	if &sub.Records[0].Features[0] != &ds.Records[2].Features[0] {
		t.Error("selection copied the record features instead of sharing them")
	}
	if sub.Records[1].Label != LabelGenuine {
		t.Errorf("unexpected label %q at position 1", sub.Records[1].Label)
	}
}

func TestIndicesAndLabelVector(t *testing.T) {
	ds := sample()

	if got := ds.Indices(LabelFraud); len(got) != 1 || got[0] != 1 {
		t.Errorf("fraud indices %v, want [1]", got)
	}

	want := []int{0, 1, 0, 0}
	for i, v := range ds.LabelVector() {
		if v != want[i] {
			t.Errorf("label[%d] = %d, want %d", i, v, want[i])
		}
	}
}

func TestFingerprint_TracksContent(t *testing.T) {
	a, b := sample(), sample()
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical datasets fingerprint differently")
	}

	b.Records[0].Features[0] = 99
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("changed dataset kept the same fingerprint")
	}
}
