package cluster

import (
	"math"
	"slices"

	"github.com/matzehuels/importgraph/pkg/simgraph"
)

// DefaultResolution weighs the null model exactly as in Newman's modularity.
const DefaultResolution = 1.0

// ModularityOptions configures [GreedyModularity].
type ModularityOptions struct {
	// Resolution scales the null-model term. Values above 1 favour smaller
	// communities, values below 1 larger ones. Zero means DefaultResolution.
	Resolution float64
}

func (o ModularityOptions) resolution() float64 {
	if o.Resolution <= 0 {
		return DefaultResolution
	}
	return o.Resolution
}

// GreedyModularity partitions every node of g into communities by
// Clauset-Newman-Moore agglomeration on weighted modularity.
//
// Each node starts in its own community. At every step the pair of connected
// communities with the largest modularity gain
//
//	dQ = 2 * (e_ij - resolution * a_i * a_j)
//
// is merged, where e_ij is the weight between i and j over twice the total
// weight and a_i is the summed strength of i over twice the total weight.
// Merging stops when the best gain is negative or no connected pair is left.
// Ties go to the pair whose earliest members were inserted first.
//
// The result always covers the full node set: a graph without edges yields
// one singleton per node and an empty graph yields nil. Communities are
// sorted by size, largest first, then by first member.
func GreedyModularity(g *simgraph.Graph, opts ModularityOptions) []Cluster {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	members := make([][]string, len(nodes))
	for i, id := range nodes {
		members[i] = []string{id}
	}

	total := float64(g.TotalWeight())
	if total == 0 {
		return sortCommunities(members)
	}

	gamma := opts.resolution()
	twoM := 2 * total

	// e[i][j] = w_ij / 2m for each ordered pair of adjacent communities.
	e := make([]map[int]float64, len(nodes))
	a := make([]float64, len(nodes))
	for i := range e {
		e[i] = make(map[int]float64)
	}
	for _, edge := range g.Edges() {
		u, v := g.Position(edge.U), g.Position(edge.V)
		w := float64(edge.Weight) / twoM
		e[u][v] += w
		e[v][u] += w
		a[u] += w
		a[v] += w
	}

	alive := make([]bool, len(nodes))
	for i := range alive {
		alive[i] = true
	}

	for {
		bi, bj := -1, -1
		best := math.Inf(-1)
		for i := range e {
			if !alive[i] {
				continue
			}
			for j, eij := range e[i] {
				if j <= i {
					continue
				}
				dq := 2 * (eij - gamma*a[i]*a[j])
				if dq > best || (dq == best && (i < bi || (i == bi && j < bj))) {
					best, bi, bj = dq, i, j
				}
			}
		}
		if bi < 0 || best < 0 {
			break
		}

		// Fold j into i.
		for k, ejk := range e[bj] {
			if k == bi {
				continue
			}
			e[bi][k] += ejk
			e[k][bi] += ejk
			delete(e[k], bj)
		}
		delete(e[bi], bj)
		e[bj] = nil
		a[bi] += a[bj]
		members[bi] = append(members[bi], members[bj]...)
		members[bj] = nil
		alive[bj] = false
	}

	var live [][]string
	for i, m := range members {
		if alive[i] {
			live = append(live, m)
		}
	}
	return sortCommunities(live)
}

func sortCommunities(groups [][]string) []Cluster {
	out := make([]Cluster, len(groups))
	for i, m := range groups {
		c := Cluster(slices.Clone(m))
		slices.Sort(c)
		out[i] = c
	}
	slices.SortStableFunc(out, func(x, y Cluster) int {
		if len(x) != len(y) {
			return len(y) - len(x)
		}
		if x[0] < y[0] {
			return -1
		}
		if x[0] > y[0] {
			return 1
		}
		return 0
	})
	return out
}

// Modularity scores a partition of g:
//
//	Q = sum over communities c of [ L_c / m - resolution * (d_c / 2m)^2 ]
//
// where m is the total edge weight, L_c the weight of edges inside c and d_c
// the summed strength of c's members. Nodes absent from every community are
// treated as singletons. A graph without edges scores 0.
func Modularity(g *simgraph.Graph, communities []Cluster, resolution float64) float64 {
	m := float64(g.TotalWeight())
	if m == 0 {
		return 0
	}
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	label := make(map[string]int)
	for i, c := range communities {
		for _, id := range c {
			label[id] = i
		}
	}
	next := len(communities)
	for _, id := range g.Nodes() {
		if _, ok := label[id]; !ok {
			label[id] = next
			next++
		}
	}

	inner := make([]float64, next)
	degree := make([]float64, next)
	for _, edge := range g.Edges() {
		w := float64(edge.Weight)
		lu, lv := label[edge.U], label[edge.V]
		degree[lu] += w
		degree[lv] += w
		if lu == lv {
			inner[lu] += w
		}
	}

	q := 0.0
	for c := 0; c < next; c++ {
		share := degree[c] / (2 * m)
		q += inner[c]/m - resolution*share*share
	}
	return q
}
