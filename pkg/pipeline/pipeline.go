// Package pipeline runs the import similarity analysis end to end.
//
// This package implements the complete load → build → cluster → report
// pipeline used by the CLI. Centralizing it keeps the stages, their ordering
// and their logging identical for every caller.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read import records from a [io.Source]
//  2. Build: Index records by import path and build the similarity graph
//  3. Cluster: Threshold the graph and extract components; run greedy
//     modularity on the full graph
//  4. Report: Collect each threshold cluster's shared imports
//
// Clustering results are two independent analyses; neither is derived from
// the other.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, io.FileSource{Path: "features.csv"}, pipeline.Options{
//	    Threshold: 3,
//	})
//	if err != nil {
//	    return err
//	}
//	out, err := pipeline.Render(ctx, result, pipeline.FormatText, pipeline.RenderOptions{})
//
// Use [Runner.Run] to skip loading when records are already in memory.
//
// [io.Source]: github.com/matzehuels/importgraph/pkg/io.Source
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/importgraph/pkg/errors"
	"github.com/matzehuels/importgraph/pkg/report"
	"github.com/matzehuels/importgraph/pkg/simgraph"
	"github.com/matzehuels/importgraph/pkg/simgraph/cluster"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultThreshold is the minimum shared-import count for an edge to
	// survive thresholding. It is an example value with no principled basis;
	// callers are expected to tune it per codebase.
	DefaultThreshold = 5

	// DefaultResolution is the modularity resolution.
	DefaultResolution = cluster.DefaultResolution
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for an analysis run.
type Options struct {
	Threshold       int     `json:"threshold"`
	Resolution      float64 `json:"resolution"`
	IncludeIsolated bool    `json:"include_isolated,omitempty"`

	// RunID tags log lines and the JSON report. Generated when empty.
	RunID string `json:"run_id,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	RunID      string
	Threshold  int
	Resolution float64

	// Graph is the full similarity graph.
	Graph *simgraph.Graph

	// Thresholded holds every file of Graph and only the edges that meet
	// the threshold.
	Thresholded *simgraph.Graph

	// Clusters are the connected components of Thresholded.
	Clusters []cluster.Cluster

	// Communities is the greedy modularity partition of Graph.
	Communities []cluster.Cluster

	// Entries describes each cluster's files and shared imports.
	Entries []report.Entry

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records             int
	Files               int
	ImportPaths         int
	Edges               int
	ThresholdEdges      int
	IsolatedFiles       int
	ClusterModularity   float64
	CommunityModularity float64

	LoadTime    time.Duration
	BuildTime   time.Duration
	ClusterTime time.Duration
}

// Summary converts r into the report model.
func (r *Result) Summary() report.Summary {
	return report.Summary{
		RunID:       r.RunID,
		Threshold:   r.Threshold,
		Resolution:  r.Resolution,
		Clusters:    r.Clusters,
		Communities: r.Communities,
		Entries:     r.Entries,
		Stats: report.Stats{
			Files:               r.Stats.Files,
			ImportPaths:         r.Stats.ImportPaths,
			Edges:               r.Stats.Edges,
			ThresholdEdges:      r.Stats.ThresholdEdges,
			IsolatedFiles:       r.Stats.IsolatedFiles,
			ClusterModularity:   r.Stats.ClusterModularity,
			CommunityModularity: r.Stats.CommunityModularity,
		},
	}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json, dot, svg)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks option values and fills in defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if err := errors.ValidateThreshold(o.Threshold); err != nil {
		return err
	}
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	if o.Resolution < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "resolution must be positive, got %g", o.Resolution)
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
