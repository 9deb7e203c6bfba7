package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/importgraph/pkg/errors"
	graphio "github.com/matzehuels/importgraph/pkg/io"
	"github.com/matzehuels/importgraph/pkg/simgraph"
	"github.com/matzehuels/importgraph/pkg/simgraph/cluster"
)

func sampleRecords() []simgraph.Record {
	return []simgraph.Record{
		{Filename: "A", ImportPath: "os"},
		{Filename: "B", ImportPath: "os"},
		{Filename: "A", ImportPath: "sys"},
		{Filename: "B", ImportPath: "sys"},
		{Filename: "C", ImportPath: "os"},
	}
}

func quietRunner() *Runner {
	return NewRunner(log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("empty options should pass: %v", err)
	}

	if opts.Threshold != DefaultThreshold {
		t.Errorf("Threshold should be %d, got %d", DefaultThreshold, opts.Threshold)
	}
	if opts.Resolution != DefaultResolution {
		t.Errorf("Resolution should be %g, got %g", DefaultResolution, opts.Resolution)
	}
	if opts.RunID == "" {
		t.Error("RunID should be generated")
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	id := opts.RunID
	if err := opts.ValidateAndSetDefaults(); err != nil || opts.RunID != id {
		t.Error("second call should be a no-op")
	}
}

func TestOptionsInvalid(t *testing.T) {
	opts := Options{Threshold: -1}
	err := opts.ValidateAndSetDefaults()
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.GetCode(err))

	opts = Options{Threshold: 2, Resolution: -0.5}
	err = opts.ValidateAndSetDefaults()
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.GetCode(err))
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name         string
		records      []simgraph.Record
		threshold    int
		wantClusters []cluster.Cluster
		wantShared   [][]string
		wantFiles    int
		wantEdges    int
	}{
		{
			name:         "threshold 2 keeps the strong pair",
			records:      sampleRecords(),
			threshold:    2,
			wantClusters: []cluster.Cluster{{"A", "B"}},
			wantShared:   [][]string{{"os", "sys"}},
			wantFiles:    3,
			wantEdges:    3,
		},
		{
			name:         "threshold 1 bridges through A",
			records:      sampleRecords(),
			threshold:    1,
			wantClusters: []cluster.Cluster{{"A", "B", "C"}},
			wantShared:   [][]string{{"os", "sys"}},
			wantFiles:    3,
			wantEdges:    3,
		},
		{
			name:         "empty input",
			records:      nil,
			threshold:    5,
			wantClusters: nil,
			wantShared:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := quietRunner().Run(context.Background(), tt.records, Options{Threshold: tt.threshold})
			require.NoError(t, err)

			assert.Equal(t, tt.wantFiles, res.Graph.NodeCount())
			assert.Equal(t, tt.wantEdges, res.Graph.EdgeCount())
			assert.ElementsMatch(t, tt.wantClusters, res.Clusters)
			require.Len(t, res.Entries, len(tt.wantShared))
			for i, want := range tt.wantShared {
				assert.Equal(t, want, res.Entries[i].SharedImports)
			}
		})
	}
}

func TestRunThresholdTwoDetails(t *testing.T) {
	res, err := quietRunner().Run(context.Background(), sampleRecords(), Options{Threshold: 2, RunID: "fixed"})
	require.NoError(t, err)

	ab, ok := res.Graph.Edge("A", "B")
	require.True(t, ok)
	assert.Equal(t, 2, ab.Weight)
	assert.ElementsMatch(t, []string{"os", "sys"}, ab.Imports)

	ac, ok := res.Graph.Edge("A", "C")
	require.True(t, ok)
	assert.Equal(t, 1, ac.Weight)
	assert.False(t, res.Thresholded.HasEdge("A", "C"))

	assert.True(t, res.Thresholded.HasNode("C"))
	assert.Equal(t, 1, res.Stats.IsolatedFiles)
	assert.Equal(t, "fixed", res.RunID)

	// The modularity partition covers every file, including C.
	assert.Equal(t, []cluster.Cluster{{"A", "B", "C"}}, res.Communities)
}

func TestRunIncludeIsolated(t *testing.T) {
	res, err := quietRunner().Run(context.Background(), sampleRecords(), Options{Threshold: 2, IncludeIsolated: true})
	require.NoError(t, err)

	assert.ElementsMatch(t, []cluster.Cluster{{"A", "B"}, {"C"}}, res.Clusters)
	require.Len(t, res.Entries, 2)
}

func TestRunEmptyPartitions(t *testing.T) {
	res, err := quietRunner().Run(context.Background(), nil, Options{})
	require.NoError(t, err)

	assert.Empty(t, res.Clusters)
	assert.Empty(t, res.Communities)
	assert.Empty(t, res.Entries)
	assert.Equal(t, 0.0, res.Stats.CommunityModularity)
}

func TestRunMalformed(t *testing.T) {
	_, err := quietRunner().Run(context.Background(), []simgraph.Record{{Filename: "A"}}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeMalformedInput), "got %v", err)
}

func TestExecute(t *testing.T) {
	var logs bytes.Buffer
	runner := NewRunner(log.NewWithOptions(&logs, log.Options{}))

	src := graphio.ReaderSource{
		Name: "test",
		R:    strings.NewReader("Filename,Feature Value\nA,os\nB,os\nA,sys\nB,sys\nC,os\n"),
	}
	res, err := runner.Execute(context.Background(), src, Options{Threshold: 2, RunID: "r1"})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Stats.Records)
	assert.Equal(t, []cluster.Cluster{{"A", "B"}}, res.Clusters)

	out := logs.String()
	assert.Contains(t, out, "loaded records")
	assert.Contains(t, out, "built similarity graph")
	assert.Contains(t, out, "clustered files")
	assert.Contains(t, out, "run=r1")
}

func TestRunQuotedImports(t *testing.T) {
	var logs bytes.Buffer
	runner := NewRunner(log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel}))

	records := []simgraph.Record{
		{Filename: "a.ts", ImportPath: "'react'"},
		{Filename: "b.ts", ImportPath: "'react'"},
	}
	res, err := runner.Run(context.Background(), records, Options{Threshold: 1})
	require.NoError(t, err)

	assert.Equal(t, []cluster.Cluster{{"a.ts", "b.ts"}}, res.Clusters)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, []string{"'react'"}, res.Entries[0].SharedImports)
	assert.Contains(t, logs.String(), "kept verbatim")
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietRunner().Execute(ctx, graphio.FileSource{Path: "missing.csv"}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender(t *testing.T) {
	res, err := quietRunner().Run(context.Background(), sampleRecords(), Options{Threshold: 2, RunID: "r1"})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		out, err := Render(ctx, res, FormatText, RenderOptions{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "Clusters based on thresholding: [{A, B}]\n"))
		assert.Contains(t, string(out), "Imports shared by the files in this cluster\nos,sys\n")
	})

	t.Run("json", func(t *testing.T) {
		out, err := Render(ctx, res, FormatJSON, RenderOptions{})
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.Equal(t, "r1", decoded["run_id"])
	})

	t.Run("dot", func(t *testing.T) {
		out, err := Render(ctx, res, FormatDOT, RenderOptions{})
		require.NoError(t, err)
		assert.Contains(t, string(out), `"A" -- "B"`)
		assert.Contains(t, string(out), `"C" [label="C"]`)
	})

	t.Run("dot hide isolated", func(t *testing.T) {
		out, err := Render(ctx, res, FormatDOT, RenderOptions{HideIsolated: true})
		require.NoError(t, err)
		assert.Contains(t, string(out), `"A" [label="A"`)
		assert.NotContains(t, string(out), `"C" [`)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Render(ctx, res, "pdf", RenderOptions{})
		assert.Equal(t, errors.ErrCodeInvalidFormat, errors.GetCode(err))
	})
}
