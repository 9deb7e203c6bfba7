package io

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/importgraph/pkg/errors"
	"github.com/matzehuels/importgraph/pkg/simgraph"
)

// ReadJSON decodes import records from a JSON array:
//
//	[
//	  {"filename": "src/a.ts", "feature_value": "react"},
//	  {"filename": "src/b.ts", "feature_value": "react"}
//	]
//
// Unknown fields are ignored. A record missing either field is a
// MALFORMED_INPUT error naming its 1-based position. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) ([]simgraph.Record, error) {
	var records []simgraph.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	for i, rec := range records {
		if rec.Filename == "" {
			return nil, errors.Malformed(i+1, "filename", "missing value")
		}
		if rec.ImportPath == "" {
			return nil, errors.Malformed(i+1, "feature_value", "missing value")
		}
	}
	return records, nil
}
