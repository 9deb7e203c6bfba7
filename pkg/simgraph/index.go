package simgraph

import (
	"slices"

	"github.com/matzehuels/importgraph/pkg/errors"
)

// Record is one (file, import) usage fact produced by an upstream import
// extractor. A file appears in as many records as it has imports.
type Record struct {
	Filename   string `json:"filename"`
	ImportPath string `json:"feature_value"`
}

// Validate checks that both fields are usable. The error carries
// errors.ErrCodeMalformedInput.
func (r Record) Validate() error {
	if err := errors.ValidateFilename(r.Filename); err != nil {
		return err
	}
	return errors.ValidateImportPath(r.ImportPath)
}

// Index maps each import path to the distinct files that use it.
//
// Import paths iterate in the order they first appear in the input, and the
// files of a path in the order they were first seen with it. An Index is
// read-only once [BuildIndex] returns.
type Index struct {
	paths []string
	files map[string][]string
}

// BuildIndex groups records by import path.
//
// Every record must have a non-empty filename and import path; the first
// violating record is reported as a malformed-input error naming its 1-based
// position. Duplicate (file, import) records collapse into one entry.
func BuildIndex(records []Record) (*Index, error) {
	idx := &Index{files: make(map[string][]string)}
	seen := make(map[string]map[string]struct{})

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "record %d", i+1)
		}
		set, ok := seen[r.ImportPath]
		if !ok {
			set = make(map[string]struct{})
			seen[r.ImportPath] = set
			idx.paths = append(idx.paths, r.ImportPath)
		}
		if _, dup := set[r.Filename]; dup {
			continue
		}
		set[r.Filename] = struct{}{}
		idx.files[r.ImportPath] = append(idx.files[r.ImportPath], r.Filename)
	}

	return idx, nil
}

// Paths returns every indexed import path. The slice is a copy.
func (x *Index) Paths() []string { return slices.Clone(x.paths) }

// Files returns the distinct files that use importPath, or nil if the path
// is unknown. The returned slice should not be modified.
func (x *Index) Files(importPath string) []string { return x.files[importPath] }

// Len returns the number of distinct import paths.
func (x *Index) Len() int { return len(x.paths) }

// DistinctFiles returns the distinct filenames of records in first-appearance
// order. Records are not validated here; pass them through [BuildIndex] first.
func DistinctFiles(records []Record) []string {
	seen := make(map[string]bool, len(records))
	var files []string
	for _, r := range records {
		if seen[r.Filename] {
			continue
		}
		seen[r.Filename] = true
		files = append(files, r.Filename)
	}
	return files
}
