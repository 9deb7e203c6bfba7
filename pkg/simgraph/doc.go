// Package simgraph builds an undirected similarity graph over source files,
// weighted by the import paths they have in common.
//
// # Overview
//
// Two files that import the same module are probably related: they talk to
// the same subsystem, or belong to the same feature. This package turns a flat
// list of (file, import) facts into a graph where each edge counts how many
// imports its two files share. The cluster subpackage then partitions that
// graph.
//
// # Basic Usage
//
// Index the records with [BuildIndex] and build the graph with [Build], or do
// both with [FromRecords]:
//
//	records := []simgraph.Record{
//	    {Filename: "a.ts", ImportPath: "react"},
//	    {Filename: "b.ts", ImportPath: "react"},
//	}
//	g, err := simgraph.FromRecords(records)
//	e, _ := g.Edge("a.ts", "b.ts") // e.Weight == 1, e.Imports == ["react"]
//
// # Edge Weights
//
// For every edge (f1, f2), Weight equals the number of distinct import paths
// used by both f1 and f2, and Imports lists exactly those paths. Files that
// share nothing with any other file are still nodes, with degree zero.
//
// # Ordering
//
// Nodes iterate in the order files first appear in the input, edges in the
// order they were created, and index keys in the order import paths first
// appear. Nothing else about ordering is promised; callers comparing
// clusters should compare them as sets.
//
// # Derived Graphs
//
// [Graph.Threshold] keeps edges at or above a weight and [Graph.Induced]
// restricts to a node subset. Both return fresh graphs, so a built graph can
// be shared by several clustering stages without copying.
//
// # Concurrency
//
// A Graph is safe for concurrent reads once built. It is not safe for
// concurrent mutation.
package simgraph
