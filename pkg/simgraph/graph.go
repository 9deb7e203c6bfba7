package simgraph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddSharedImport] when either
	// endpoint has not been added as a node.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned by [Graph.AddSharedImport] when both endpoints
	// are the same file. A file never shares an import with itself.
	ErrSelfLoop = errors.New("self-loop")

	// ErrDuplicateImport is returned by [Graph.AddSharedImport] when the import
	// path is already recorded on the edge. Accepting it would break the
	// weight == distinct shared imports invariant.
	ErrDuplicateImport = errors.New("import already recorded on edge")
)

// Edge is an undirected connection between two files that share at least one
// import path.
//
// U is always the endpoint that was added to the graph first. Weight equals
// len(Imports) and counts the distinct import paths both files use.
type Edge struct {
	U       string   // Earlier-inserted endpoint
	V       string   // Later-inserted endpoint
	Weight  int      // Number of shared import paths
	Imports []string // Shared import paths, in the order they were added
}

// Other returns the endpoint of e that is not id.
func (e Edge) Other(id string) string {
	if e.U == id {
		return e.V
	}
	return e.U
}

// pair is the canonical key of an undirected edge: u has the lower insertion
// position.
type pair struct{ u, v string }

// Graph is an undirected, weighted file similarity graph.
//
// Nodes are filenames kept in insertion order. Edges carry the count and list
// of shared import paths. Nodes, edges and neighbour lists are all reported in
// insertion order so repeated runs over the same input produce identical
// output.
//
// The zero value is not usable - use [New] to create a Graph. A Graph is
// mutated only while it is being built; [Graph.Threshold] and
// [Graph.Induced] return new graphs and never modify the receiver. Graph is
// not safe for concurrent mutation.
type Graph struct {
	nodes []string
	pos   map[string]int
	edges []*Edge
	index map[pair]*Edge
	adj   map[string][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		pos:   make(map[string]int),
		index: make(map[pair]*Edge),
		adj:   make(map[string][]string),
	}
}

// AddNode adds a file to the graph.
// Returns ErrInvalidNodeID for an empty ID or ErrDuplicateNodeID if the file
// is already present.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.pos[id]; exists {
		return ErrDuplicateNodeID
	}
	g.pos[id] = len(g.nodes)
	g.nodes = append(g.nodes, id)
	return nil
}

// AddSharedImport records that files a and b both use importPath.
//
// If the edge does not exist it is created with weight 1 and Imports
// [importPath]; otherwise its weight is incremented and importPath appended.
// Argument order does not matter.
func (g *Graph) AddSharedImport(a, b, importPath string) error {
	if a == b {
		return ErrSelfLoop
	}
	if !g.HasNode(a) || !g.HasNode(b) {
		return ErrUnknownNode
	}
	key := g.key(a, b)
	if e, ok := g.index[key]; ok {
		if slices.Contains(e.Imports, importPath) {
			return ErrDuplicateImport
		}
		e.Weight++
		e.Imports = append(e.Imports, importPath)
		return nil
	}
	g.insertEdge(&Edge{U: key.u, V: key.v, Weight: 1, Imports: []string{importPath}})
	return nil
}

func (g *Graph) insertEdge(e *Edge) {
	g.edges = append(g.edges, e)
	g.index[pair{e.U, e.V}] = e
	g.adj[e.U] = append(g.adj[e.U], e.V)
	g.adj[e.V] = append(g.adj[e.V], e.U)
}

func (g *Graph) key(a, b string) pair {
	if g.pos[a] <= g.pos[b] {
		return pair{a, b}
	}
	return pair{b, a}
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.pos[id]
	return ok
}

// Position returns the insertion position of id, or -1 if absent.
func (g *Graph) Position(id string) int {
	if p, ok := g.pos[id]; ok {
		return p
	}
	return -1
}

// Nodes returns all filenames in insertion order. The slice is a copy.
func (g *Graph) Nodes() []string { return slices.Clone(g.nodes) }

// Edges returns copies of all edges in creation order. Modifying the
// returned edges does not affect the graph.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = copyEdge(e)
	}
	return out
}

// Edge returns a copy of the edge between a and b, in either order.
func (g *Graph) Edge(a, b string) (Edge, bool) {
	if !g.HasNode(a) || !g.HasNode(b) {
		return Edge{}, false
	}
	e, ok := g.index[g.key(a, b)]
	if !ok {
		return Edge{}, false
	}
	return copyEdge(e), true
}

// HasEdge reports whether a and b share at least one import.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.Edge(a, b)
	return ok
}

// Neighbors returns the files adjacent to id in edge creation order.
// The returned slice should not be modified.
func (g *Graph) Neighbors(id string) []string { return g.adj[id] }

// Degree returns the number of edges touching id.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// Strength returns the sum of weights of the edges touching id.
func (g *Graph) Strength(id string) int {
	total := 0
	for _, nb := range g.adj[id] {
		total += g.index[g.key(id, nb)].Weight
	}
	return total
}

// NodeCount returns the number of files in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// TotalWeight returns the sum of all edge weights.
func (g *Graph) TotalWeight() int {
	total := 0
	for _, e := range g.edges {
		total += e.Weight
	}
	return total
}

// Threshold returns a new graph holding every node of g and only the edges
// with Weight >= t. Edge attributes are copied. Nodes whose edges all fall
// below t remain in the result with degree zero.
func (g *Graph) Threshold(t int) *Graph {
	out := g.emptyCopy(g.nodes)
	for _, e := range g.edges {
		if e.Weight >= t {
			c := copyEdge(e)
			out.insertEdge(&c)
		}
	}
	return out
}

// Induced returns the subgraph on members: the members that are nodes of g,
// in g's insertion order, and every edge of g with both endpoints among them.
// Unknown members are ignored.
func (g *Graph) Induced(members []string) *Graph {
	in := make(map[string]bool, len(members))
	for _, m := range members {
		if g.HasNode(m) {
			in[m] = true
		}
	}
	nodes := make([]string, 0, len(in))
	for _, id := range g.nodes {
		if in[id] {
			nodes = append(nodes, id)
		}
	}
	out := g.emptyCopy(nodes)
	for _, e := range g.edges {
		if in[e.U] && in[e.V] {
			c := copyEdge(e)
			out.insertEdge(&c)
		}
	}
	return out
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	return g.Threshold(0)
}

func (g *Graph) emptyCopy(nodes []string) *Graph {
	out := New()
	for _, id := range nodes {
		out.pos[id] = len(out.nodes)
		out.nodes = append(out.nodes, id)
	}
	return out
}

func copyEdge(e *Edge) Edge {
	return Edge{U: e.U, V: e.V, Weight: e.Weight, Imports: slices.Clone(e.Imports)}
}
