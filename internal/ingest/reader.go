package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"fraudreport/domain/core"
	"fraudreport/domain/dataset"
	"fraudreport/internal"
	"fraudreport/internal/errors"
)

// LabelColumn is the binary class column of the input schema.
const LabelColumn = "Class"

// DataReader loads the delimited transaction file into an immutable Dataset.
type DataReader struct {
	filePath string
	log      *internal.Logger
}

// NewDataReader creates a reader for the given CSV path.
func NewDataReader(filePath string) *DataReader {
	return &DataReader{filePath: filePath, log: internal.DefaultLogger}
}

// ReadDataset reads and validates the file. The first row must be a header
// containing the Class column; every other column must be numeric. Rows that
// fail to parse abort the load with the offending row and column identified.
func (r *DataReader) ReadDataset() (*dataset.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DataInvalid(fmt.Sprintf("data file not found: %s", r.filePath))
	}

	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open data file")
	}
	defer file.Close()

	readStart := time.Now()
	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read data file")
	}
	r.log.Debug("[DataReader] file read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, errors.DataInvalid("data file must have a header row and at least one data row")
	}

	return r.processRows(rows)
}

func (r *DataReader) processRows(rows [][]string) (*dataset.Dataset, error) {
	header := rows[0]
	labelIdx := -1
	columns := make([]string, 0, len(header)-1)
	for i, name := range header {
		if name == LabelColumn {
			labelIdx = i
			continue
		}
		columns = append(columns, name)
	}
	if labelIdx == -1 {
		return nil, errors.DataInvalid(fmt.Sprintf("header has no %q column", LabelColumn))
	}

	records := make([]dataset.Record, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, errors.WithCode(errors.CodeDataInvalid,
				fmt.Errorf("row %d: expected %d fields, got %d", rowNum+2, len(header), len(row)))
		}

		features := make([]float64, 0, len(columns))
		var label dataset.Label
		for i, cell := range row {
			if i == labelIdx {
				lab, err := recodeLabel(cell)
				if err != nil {
					return nil, errors.WithCode(errors.CodeDataInvalid,
						core.NewDataError(rowNum+2, header[i], err))
				}
				label = lab
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.WithCode(errors.CodeDataInvalid,
					core.NewDataError(rowNum+2, header[i], err))
			}
			features = append(features, v)
		}
		records = append(records, dataset.Record{Features: features, Label: label})
	}

	ds := &dataset.Dataset{Columns: columns, Records: records}
	fraud, genuine := ds.Counts()
	r.log.Info("[DataReader] loaded %d records (%d fraud, %d genuine)", ds.Len(), fraud, genuine)
	return ds, nil
}

// recodeLabel maps the raw 0/1 class to the named categories.
func recodeLabel(raw string) (dataset.Label, error) {
	switch raw {
	case "0":
		return dataset.LabelGenuine, nil
	case "1":
		return dataset.LabelFraud, nil
	default:
		return "", fmt.Errorf("label must be 0 or 1, got %q", raw)
	}
}
