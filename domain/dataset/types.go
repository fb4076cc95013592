package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"fraudreport/domain/core"
)

// Label is the binary transaction class.
type Label string

const (
	// LabelGenuine is the majority (negative) class.
	LabelGenuine Label = "genuine"
	// LabelFraud is the minority (positive) class.
	LabelFraud Label = "fraud"
)

// Record is one transaction: its numeric input attributes plus the class
// label. Immutable once loaded.
type Record struct {
	Features []float64
	Label    Label
}

// Dataset is an ordered collection of records sharing a fixed schema.
// Columns names the feature attributes, aligned with Record.Features.
type Dataset struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Counts returns the number of records per class.
func (d *Dataset) Counts() (fraud, genuine int) {
	for _, r := range d.Records {
		if r.Label == LabelFraud {
			fraud++
		} else {
			genuine++
		}
	}
	return fraud, genuine
}

// MinorityLabel returns the label with the fewer records. Ties resolve to
// fraud, which is the positive class throughout the analysis.
func (d *Dataset) MinorityLabel() Label {
	fraud, genuine := d.Counts()
	if genuine < fraud {
		return LabelGenuine
	}
	return LabelFraud
}

// ColumnIndex returns the position of a named column, or an error if the
// schema does not contain it.
func (d *Dataset) ColumnIndex(name string) (int, error) {
	for i, c := range d.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q: %w", name, core.ErrSchemaMismatch)
}

// ColumnValues extracts one attribute across all records.
func (d *Dataset) ColumnValues(name string) ([]float64, error) {
	idx, err := d.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Features[idx]
	}
	return out, nil
}

// Select returns a new Dataset holding the records at the given indices, in
// order. The records themselves are shared; they are immutable by contract.
func (d *Dataset) Select(indices []int) *Dataset {
	records := make([]Record, len(indices))
	for i, idx := range indices {
		records[i] = d.Records[idx]
	}
	return &Dataset{Columns: d.Columns, Records: records}
}

// Indices returns the record indices carrying the given label.
func (d *Dataset) Indices(label Label) []int {
	var out []int
	for i, r := range d.Records {
		if r.Label == label {
			out = append(out, i)
		}
	}
	return out
}

// FeatureMatrix returns the records' attributes as an n x p matrix. Rows
// alias the records' feature slices; callers must not mutate them.
func (d *Dataset) FeatureMatrix() [][]float64 {
	out := make([][]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Features
	}
	return out
}

// LabelVector returns the labels as ints with fraud encoded as 1.
func (d *Dataset) LabelVector() []int {
	out := make([]int, len(d.Records))
	for i, r := range d.Records {
		if r.Label == LabelFraud {
			out[i] = 1
		}
	}
	return out
}

// Fingerprint hashes the dataset contents for the run manifest.
func (d *Dataset) Fingerprint() core.DatasetFingerprint {
	var b strings.Builder
	b.WriteString(strings.Join(d.Columns, ","))
	for _, r := range d.Records {
		b.WriteString(string(r.Label))
		for _, v := range r.Features {
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return core.DatasetFingerprint(core.NewHash([]byte(b.String())))
}
