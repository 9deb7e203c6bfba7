package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/importgraph/pkg/simgraph"
)

func TestGreedyModularitySample(t *testing.T) {
	g := sampleGraph(t)

	got := GreedyModularity(g, ModularityOptions{})
	assert.Equal(t, []Cluster{{"A", "B", "C"}}, got)
	assert.InDelta(t, 0.0, Modularity(g, got, DefaultResolution), 1e-12)
}

func TestGreedyModularityEmpty(t *testing.T) {
	assert.Empty(t, GreedyModularity(simgraph.New(), ModularityOptions{}))
}

func TestGreedyModularityNoEdges(t *testing.T) {
	g := simgraph.New()
	for _, n := range []string{"c", "a", "b"} {
		require.NoError(t, g.AddNode(n))
	}

	got := GreedyModularity(g, ModularityOptions{})
	assert.Equal(t, []Cluster{{"a"}, {"b"}, {"c"}}, got)
}

func TestGreedyModularityTwoTriangles(t *testing.T) {
	g := weighted(t,
		[]string{"a1", "a2", "a3", "b1", "b2", "b3"},
		map[[2]string]int{
			{"a1", "a2"}: 5,
			{"a2", "a3"}: 5,
			{"a1", "a3"}: 5,
			{"b1", "b2"}: 5,
			{"b2", "b3"}: 5,
			{"b1", "b3"}: 5,
			{"a1", "b1"}: 1,
		})

	got := GreedyModularity(g, ModularityOptions{})
	assert.Equal(t, []Cluster{{"a1", "a2", "a3"}, {"b1", "b2", "b3"}}, got)

	q := Modularity(g, got, DefaultResolution)
	assert.Greater(t, q, Modularity(g, []Cluster{{"a1", "a2", "a3", "b1", "b2", "b3"}}, DefaultResolution))
}

func TestGreedyModularityKeepsIsolated(t *testing.T) {
	g := weighted(t,
		[]string{"x", "y", "lonely"},
		map[[2]string]int{{"x", "y"}: 2})

	got := GreedyModularity(g, ModularityOptions{})
	assert.Equal(t, []Cluster{{"x", "y"}, {"lonely"}}, got)
}

func TestGreedyModularityResolution(t *testing.T) {
	g := weighted(t,
		[]string{"a1", "a2", "b1", "b2"},
		map[[2]string]int{
			{"a1", "a2"}: 4,
			{"b1", "b2"}: 4,
			{"a2", "b1"}: 2,
		})

	coarse := GreedyModularity(g, ModularityOptions{Resolution: 0.1})
	fine := GreedyModularity(g, ModularityOptions{Resolution: 1})

	assert.Len(t, coarse, 1)
	assert.Len(t, fine, 2)
}

func TestModularity(t *testing.T) {
	g := sampleGraph(t)

	tests := []struct {
		name  string
		parts []Cluster
		want  float64
	}{
		// m=4; strengths A=3 B=3 C=2.
		{"all in one", []Cluster{{"A", "B", "C"}}, 0},
		{"pair and single", []Cluster{{"A", "B"}, {"C"}}, 0.5 - 0.5625 - 0.0625},
		{"singletons", []Cluster{{"A"}, {"B"}, {"C"}}, -(9.0 + 9.0 + 4.0) / 64},
		{"missing nodes are singletons", []Cluster{{"A", "B"}}, 0.5 - 0.5625 - 0.0625},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Modularity(g, tt.parts, 1), 1e-12)
		})
	}
}

func TestModularityNoEdges(t *testing.T) {
	g := simgraph.New()
	require.NoError(t, g.AddNode("a"))
	assert.Equal(t, 0.0, Modularity(g, []Cluster{{"a"}}, 1))
}
