package report

import (
	"slices"

	"github.com/matzehuels/importgraph/pkg/simgraph"
	"github.com/matzehuels/importgraph/pkg/simgraph/cluster"
)

// Entry describes one threshold cluster.
type Entry struct {
	ID            int      `json:"id"`             // 0-based position in the cluster list
	Files         []string `json:"files"`          // Member filenames, sorted
	SharedImports []string `json:"shared_imports"` // Union of intra-cluster edge imports, sorted
}

// Build produces one entry per cluster, in cluster order.
//
// Shared imports are collected only from edges of th whose endpoints both lie
// in the cluster, so imports carried by edges leaving the cluster never
// appear. th should be the thresholded graph the clusters were taken from.
func Build(th *simgraph.Graph, clusters []cluster.Cluster) []Entry {
	entries := make([]Entry, len(clusters))
	for i, c := range clusters {
		entries[i] = Entry{
			ID:            i,
			Files:         sortedCopy(c),
			SharedImports: sharedImports(th.Induced(c)),
		}
	}
	return entries
}

func sharedImports(sub *simgraph.Graph) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, e := range sub.Edges() {
		for _, p := range e.Imports {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	slices.Sort(out)
	return out
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	slices.Sort(out)
	return out
}

// Summary is everything a run reports: both partitions, the per-cluster
// entries, and the graph statistics behind them.
type Summary struct {
	RunID       string            `json:"run_id,omitempty"`
	Threshold   int               `json:"threshold"`
	Resolution  float64           `json:"resolution"`
	Stats       Stats             `json:"stats"`
	Clusters    []cluster.Cluster `json:"clusters"`
	Communities []cluster.Cluster `json:"communities"`
	Entries     []Entry           `json:"entries"`
}

// Stats holds graph sizes and partition quality scores.
type Stats struct {
	Files               int     `json:"files"`
	ImportPaths         int     `json:"import_paths"`
	Edges               int     `json:"edges"`
	ThresholdEdges      int     `json:"threshold_edges"`
	IsolatedFiles       int     `json:"isolated_files"`
	ClusterModularity   float64 `json:"cluster_modularity"`
	CommunityModularity float64 `json:"community_modularity"`
}
