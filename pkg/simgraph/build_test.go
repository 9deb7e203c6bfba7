package simgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/importgraph/pkg/errors"
)

// sampleRecords is the five-row example used throughout the package tests.
func sampleRecords() []Record {
	return []Record{
		{"A", "os"},
		{"B", "os"},
		{"A", "sys"},
		{"B", "sys"},
		{"C", "os"},
	}
}

func TestBuildIndex(t *testing.T) {
	records := append(sampleRecords(), Record{"A", "os"}) // duplicate fact

	idx, err := BuildIndex(records)
	require.NoError(t, err)

	assert.Equal(t, []string{"os", "sys"}, idx.Paths())
	assert.Equal(t, []string{"A", "B", "C"}, idx.Files("os"))
	assert.Equal(t, []string{"A", "B"}, idx.Files("sys"))
	assert.Nil(t, idx.Files("re"))
	assert.Equal(t, 2, idx.Len())
}

func TestBuildIndexMalformed(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
	}{
		{"empty filename", []Record{{"A", "os"}, {"", "os"}}},
		{"empty import", []Record{{"A", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildIndex(tt.records)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeMalformedInput), "got %v", err)
		})
	}
}

func TestFromRecordsKeepsValuesVerbatim(t *testing.T) {
	records := []Record{
		{"a.ts", "'react'"},
		{"b.ts", "'react'"},
		{"c.ts", "react"},
		{"d.ts", " "},
		{"e.ts", " "},
	}

	g, err := FromRecords(records)
	require.NoError(t, err)

	ab, ok := g.Edge("a.ts", "b.ts")
	require.True(t, ok)
	assert.Equal(t, 1, ab.Weight)
	assert.Equal(t, []string{"'react'"}, ab.Imports)

	assert.False(t, g.HasEdge("a.ts", "c.ts"), "'react' and react are different imports")
	assert.True(t, g.HasEdge("d.ts", "e.ts"))
}

func TestDistinctFiles(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, DistinctFiles(sampleRecords()))
	assert.Empty(t, DistinctFiles(nil))
}

func TestFromRecordsSample(t *testing.T) {
	g, err := FromRecords(sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())
	assert.Equal(t, 3, g.EdgeCount())

	ab, ok := g.Edge("A", "B")
	require.True(t, ok)
	assert.Equal(t, 2, ab.Weight)
	assert.ElementsMatch(t, []string{"os", "sys"}, ab.Imports)

	ac, ok := g.Edge("A", "C")
	require.True(t, ok)
	assert.Equal(t, 1, ac.Weight)
	assert.Equal(t, []string{"os"}, ac.Imports)

	bc, ok := g.Edge("B", "C")
	require.True(t, ok)
	assert.Equal(t, 1, bc.Weight)
}

func TestFromRecordsEmpty(t *testing.T) {
	g, err := FromRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestFromRecordsIsolatedFile(t *testing.T) {
	records := []Record{
		{"a.ts", "react"},
		{"b.ts", "react"},
		{"lonely.ts", "left-pad"},
	}

	g, err := FromRecords(records)
	require.NoError(t, err)

	assert.True(t, g.HasNode("lonely.ts"))
	assert.Equal(t, 0, g.Degree("lonely.ts"))
	assert.Equal(t, 1, g.EdgeCount())
}

func TestBuildRejectsUnknownFile(t *testing.T) {
	idx, err := BuildIndex(sampleRecords())
	require.NoError(t, err)

	_, err = Build(idx, []string{"A", "B"})
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestBuildRejectsDuplicateFiles(t *testing.T) {
	idx, err := BuildIndex(nil)
	require.NoError(t, err)

	_, err = Build(idx, []string{"A", "A"})
	assert.ErrorIs(t, err, ErrDuplicateNodeID)
}
