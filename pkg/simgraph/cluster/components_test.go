package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/importgraph/pkg/simgraph"
)

func sampleGraph(t *testing.T) *simgraph.Graph {
	t.Helper()
	g, err := simgraph.FromRecords([]simgraph.Record{
		{Filename: "A", ImportPath: "os"},
		{Filename: "B", ImportPath: "os"},
		{Filename: "A", ImportPath: "sys"},
		{Filename: "B", ImportPath: "sys"},
		{Filename: "C", ImportPath: "os"},
	})
	require.NoError(t, err)
	return g
}

// weighted builds a graph from explicit weighted edges. Each unit of weight
// is a distinct synthetic import.
func weighted(t *testing.T, nodes []string, edges map[[2]string]int) *simgraph.Graph {
	t.Helper()
	g := simgraph.New()
	for _, n := range nodes {
		require.NoError(t, g.AddNode(n))
	}
	for pair, w := range edges {
		for i := 0; i < w; i++ {
			require.NoError(t, g.AddSharedImport(pair[0], pair[1], pair[0]+"-"+pair[1]+"-"+string(rune('a'+i))))
		}
	}
	return g
}

func TestComponentsThresholdTwo(t *testing.T) {
	th := sampleGraph(t).Threshold(2)

	got := Components(th, ComponentOptions{})
	assert.Equal(t, []Cluster{{"A", "B"}}, got)
	assert.Equal(t, []int{2}, Sizes(got))
}

func TestComponentsThresholdOne(t *testing.T) {
	th := sampleGraph(t).Threshold(1)

	got := Components(th, ComponentOptions{})
	assert.Equal(t, []Cluster{{"A", "B", "C"}}, got)
}

func TestComponentsIncludeIsolated(t *testing.T) {
	th := sampleGraph(t).Threshold(2)

	got := Components(th, ComponentOptions{IncludeIsolated: true})
	assert.ElementsMatch(t, []Cluster{{"A", "B"}, {"C"}}, got)
}

func TestComponentsEmpty(t *testing.T) {
	assert.Empty(t, Components(simgraph.New(), ComponentOptions{}))
	assert.Empty(t, Components(simgraph.New(), ComponentOptions{IncludeIsolated: true}))
}

func TestComponentsDisjoint(t *testing.T) {
	g := weighted(t,
		[]string{"a", "b", "c", "d", "e", "f"},
		map[[2]string]int{
			{"a", "b"}: 3,
			{"b", "c"}: 3,
			{"d", "e"}: 4,
			{"c", "f"}: 1,
		})

	got := Components(g.Threshold(3), ComponentOptions{})
	assert.ElementsMatch(t, []Cluster{{"a", "b", "c"}, {"d", "e"}}, got)
	require.NoError(t, Validate(g, got))
}

func TestClusterFormatting(t *testing.T) {
	c := Cluster{"a.ts", "b.ts"}
	assert.Equal(t, "{a.ts, b.ts}", c.String())
	assert.True(t, c.Contains("b.ts"))
	assert.False(t, c.Contains("c.ts"))

	assert.Equal(t, "[{a.ts, b.ts}, {c.ts}]", Format([]Cluster{c, {"c.ts"}}))
	assert.Equal(t, "[]", Format(nil))
}

func TestValidate(t *testing.T) {
	g := sampleGraph(t)

	tests := []struct {
		name     string
		clusters []Cluster
		wantErr  bool
	}{
		{"valid", []Cluster{{"A", "B"}, {"C"}}, false},
		{"partial cover", []Cluster{{"A"}}, false},
		{"unknown node", []Cluster{{"A", "Z"}}, true},
		{"overlap", []Cluster{{"A", "B"}, {"B", "C"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(g, tt.clusters)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
