package io

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/importgraph/pkg/errors"
	"github.com/matzehuels/importgraph/pkg/simgraph"
)

// Supported input formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Options controls file and stream decoding.
type Options struct {
	// Format is FormatCSV or FormatJSON. Empty means: infer from the file
	// extension, or CSV for streams.
	Format string

	// FeatureType filters CSV rows. See [CSVOptions].
	FeatureType string
}

// FormatFromPath returns the input format implied by path's extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input extension %q (want .csv or .json)", ext)
	}
}

// Read decodes records from r in the given format.
func Read(r io.Reader, opts Options) ([]simgraph.Record, error) {
	switch opts.Format {
	case "", FormatCSV:
		return ReadCSV(r, CSVOptions{FeatureType: opts.FeatureType})
	case FormatJSON:
		return ReadJSON(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q (want csv or json)", opts.Format)
	}
}

// ImportFile reads the records stored at path.
//
// The format comes from opts.Format or, when empty, from the extension.
// A missing file is reported with FILE_NOT_FOUND.
func ImportFile(path string, opts Options) ([]simgraph.Record, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	if opts.Format == "" {
		format, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		opts.Format = format
	}

	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	return Read(f, opts)
}
