package io

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"strings"

	"github.com/matzehuels/importgraph/pkg/errors"
	"github.com/matzehuels/importgraph/pkg/simgraph"
)

// Column headers of the feature export.
const (
	ColumnFilename     = "Filename"
	ColumnFeatureType  = "Feature Type"
	ColumnFeatureValue = "Feature Value"
)

// DefaultFeatureType selects import rows in feature exports that mix several
// feature kinds.
const DefaultFeatureType = "import_source"

// CSVOptions controls [ReadCSV].
type CSVOptions struct {
	// FeatureType keeps only rows whose Feature Type column equals it. It is
	// ignored when the input has no such column. Empty means
	// DefaultFeatureType.
	FeatureType string
}

func (o CSVOptions) featureType() string {
	if o.FeatureType == "" {
		return DefaultFeatureType
	}
	return o.FeatureType
}

// ReadCSV decodes import records from a CSV stream with a header row.
//
// The header must name a Filename and a Feature Value column; other columns
// are ignored except Feature Type, which filters rows when present:
//
//	Filename,Feature Type,Feature Value,Combined Feature
//	src/a.ts,import_source,react,import_source:react
//	src/a.ts,jsx_element,div,jsx_element:div
//
// Header names are trimmed; values are kept exactly as written, so " os"
// and "os" are different imports. A missing column or an empty value is a
// MALFORMED_INPUT error naming the 1-based physical line, which accounts for
// quoted fields spanning several lines. ReadCSV does not close r.
func ReadCSV(r io.Reader, opts CSVOptions) ([]simgraph.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv header")
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	fileCol, ok := cols[ColumnFilename]
	if !ok {
		return nil, errors.Malformed(1, ColumnFilename, "missing column")
	}
	valueCol, ok := cols[ColumnFeatureValue]
	if !ok {
		return nil, errors.Malformed(1, ColumnFeatureValue, "missing column")
	}
	typeCol, filter := cols[ColumnFeatureType]
	want := opts.featureType()

	var records []simgraph.Record
	for {
		row, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv")
		}
		if filter && field(row, typeCol) != want {
			continue
		}
		rec := simgraph.Record{
			Filename:   field(row, fileCol),
			ImportPath: field(row, valueCol),
		}
		if rec.Filename == "" {
			return nil, errors.Malformed(fieldLine(cr, row, fileCol), ColumnFilename, "empty value")
		}
		if rec.ImportPath == "" {
			return nil, errors.Malformed(fieldLine(cr, row, valueCol), ColumnFeatureValue, "empty value")
		}
		records = append(records, rec)
	}
	return records, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// fieldLine returns the line where column i of the last read row starts, or
// where the row's last field starts when the row is too short.
func fieldLine(cr *csv.Reader, row []string, i int) int {
	i = min(i, len(row)-1)
	line, _ := cr.FieldPos(i)
	return line
}
