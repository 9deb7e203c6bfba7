// Package cluster groups the files of a similarity graph.
//
// # Overview
//
// Two independent analyses are provided:
//
//   - [Components]: connected components of a graph, typically one that has
//     already been thresholded with [simgraph.Graph.Threshold]. This gives
//     hard-cutoff clusters controlled by a single integer weight.
//   - [GreedyModularity]: Clauset-Newman-Moore agglomeration on weighted
//     modularity. It considers every edge weight at once and always
//     partitions the full node set.
//
// The two outputs answer different questions and are not reconciled with
// each other. Reports print them side by side.
//
// # Isolated Files
//
// By default [Components] omits nodes that have no edges, so a file whose
// shared imports all fall below the threshold appears in no cluster. Set
// [ComponentOptions.IncludeIsolated] to emit them as singletons instead.
// [GreedyModularity] has no such gap: an edgeless node is its own community.
//
// # Scoring
//
// [Modularity] computes weighted Newman modularity for any partition and is
// used to report the quality of both analyses:
//
//	q := cluster.Modularity(g, communities, cluster.DefaultResolution)
//
// # Ordering
//
// Members of every [Cluster] are sorted. Components are listed in discovery
// order. Communities are listed largest first, ties broken by first member.
package cluster
