package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/importgraph/pkg/simgraph/cluster"
)

// WriteJSON encodes s as indented JSON. Nil partitions are written as empty
// arrays so consumers never see null.
func WriteJSON(w io.Writer, s Summary) error {
	if s.Clusters == nil {
		s.Clusters = []cluster.Cluster{}
	}
	if s.Communities == nil {
		s.Communities = []cluster.Cluster{}
	}
	if s.Entries == nil {
		s.Entries = []Entry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
