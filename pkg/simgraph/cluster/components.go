package cluster

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/importgraph/pkg/simgraph"
)

// Cluster is a set of filenames. Members are sorted ascending.
type Cluster []string

// Contains reports whether id is a member of c.
func (c Cluster) Contains(id string) bool {
	_, found := slices.BinarySearch(c, id)
	return found
}

// String formats c as a brace-delimited set, e.g. "{a.ts, b.ts}".
func (c Cluster) String() string {
	return "{" + strings.Join(c, ", ") + "}"
}

// Format renders a cluster list as "[{a, b}, {c}]". An empty list is "[]".
func Format(clusters []Cluster) string {
	parts := make([]string, len(clusters))
	for i, c := range clusters {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Sizes returns the member count of each cluster, in cluster order.
func Sizes(clusters []Cluster) []int {
	out := make([]int, len(clusters))
	for i, c := range clusters {
		out[i] = len(c)
	}
	return out
}

// ComponentOptions configures [Components].
type ComponentOptions struct {
	// IncludeIsolated adds a singleton cluster for every node without edges.
	// When false (the default) such nodes belong to no cluster, which matches
	// extracting components from the surviving edge set alone.
	IncludeIsolated bool
}

// Components returns the connected components of g.
//
// Components are discovered by breadth-first search starting from nodes in
// insertion order, so the cluster list is ordered by each cluster's earliest
// inserted member. Callers should still compare results as a set of sets.
//
// Apply it to a thresholded graph to get threshold clusters:
//
//	clusters := cluster.Components(g.Threshold(5), cluster.ComponentOptions{})
func Components(g *simgraph.Graph, opts ComponentOptions) []Cluster {
	visited := make(map[string]bool, g.NodeCount())
	var clusters []Cluster

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}
		if g.Degree(start) == 0 && !opts.IncludeIsolated {
			continue
		}

		visited[start] = true
		queue := []string{start}
		var members Cluster

		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			members = append(members, id)

			for _, nb := range g.Neighbors(id) {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}

		slices.Sort(members)
		clusters = append(clusters, members)
	}

	return clusters
}

// Validate checks that clusters are pairwise disjoint and name only nodes of g.
func Validate(g *simgraph.Graph, clusters []Cluster) error {
	owner := make(map[string]int)
	for i, c := range clusters {
		for _, id := range c {
			if !g.HasNode(id) {
				return fmt.Errorf("cluster %d: unknown node %q", i, id)
			}
			if prev, ok := owner[id]; ok {
				return fmt.Errorf("node %q in clusters %d and %d", id, prev, i)
			}
			owner[id] = i
		}
	}
	return nil
}
