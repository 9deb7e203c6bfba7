package simgraph

import "fmt"

// Build constructs the similarity graph from an index and the full list of
// distinct files.
//
// Every file becomes a node, including files that share nothing. For each
// import path, every unordered pair of its files gains one unit of weight and
// the path is appended to the pair's Imports. Paths used by a single file
// contribute no edges.
//
// The work is proportional to the sum over import paths of C(files, 2), which
// grows quadratically for imports shared by most of the codebase (a logging
// package, a framework root). That is a known scaling limit of the measure.
//
// Build returns an error if files contains duplicates or if the index names
// a file missing from files.
func Build(idx *Index, files []string) (*Graph, error) {
	g := New()
	for _, f := range files {
		if err := g.AddNode(f); err != nil {
			return nil, fmt.Errorf("add node %q: %w", f, err)
		}
	}

	for _, p := range idx.paths {
		users := idx.files[p]
		for i := 0; i < len(users); i++ {
			for j := i + 1; j < len(users); j++ {
				if err := g.AddSharedImport(users[i], users[j], p); err != nil {
					return nil, fmt.Errorf("link %q and %q via %q: %w", users[i], users[j], p, err)
				}
			}
		}
	}

	return g, nil
}

// FromRecords indexes records and builds their similarity graph in one step.
func FromRecords(records []Record) (*Graph, error) {
	idx, err := BuildIndex(records)
	if err != nil {
		return nil, err
	}
	return Build(idx, DistinctFiles(records))
}
