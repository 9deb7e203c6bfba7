package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	graphio "github.com/matzehuels/importgraph/pkg/io"
	"github.com/matzehuels/importgraph/pkg/observability"
	"github.com/matzehuels/importgraph/pkg/report"
	"github.com/matzehuels/importgraph/pkg/simgraph"
	"github.com/matzehuels/importgraph/pkg/simgraph/cluster"
)

// Runner executes analysis runs.
//
// The Runner is stateless except for the logger - it doesn't store results.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger means log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute loads records from src and runs the analysis on them.
func (r *Runner) Execute(ctx context.Context, src graphio.Source, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger.With("run", opts.RunID)

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.Describe())
	loadStart := time.Now()
	records, err := src.Load(ctx)
	loadTime := time.Since(loadStart)
	hooks.OnLoadComplete(ctx, src.Describe(), len(records), loadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	logger.Info("loaded records",
		"source", src.Describe(),
		"records", len(records),
		"duration", loadTime)

	result, err := r.Run(ctx, records, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// Run builds the similarity graph from records and clusters it.
func (r *Runner) Run(ctx context.Context, records []simgraph.Record, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger.With("run", opts.RunID)
	hooks := observability.Pipeline()

	result := &Result{
		RunID:      opts.RunID,
		Threshold:  opts.Threshold,
		Resolution: opts.Resolution,
	}
	result.Stats.Records = len(records)

	// Stage 1: Build
	buildStart := time.Now()
	idx, err := simgraph.BuildIndex(records)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(buildStart), err)
		return nil, fmt.Errorf("index: %w", err)
	}
	g, err := simgraph.Build(idx, simgraph.DistinctFiles(records))
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(buildStart), err)
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	hooks.OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), result.Stats.BuildTime, nil)
	result.Stats.Files = g.NodeCount()
	result.Stats.ImportPaths = idx.Len()
	result.Stats.Edges = g.EdgeCount()

	if n := countQuoted(records); n > 0 {
		logger.Debug("import paths still wrapped in quotes are kept verbatim", "records", n)
	}
	logger.Info("built similarity graph",
		"files", g.NodeCount(),
		"imports", idx.Len(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.BuildTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Cluster
	clusterStart := time.Now()
	th := g.Threshold(opts.Threshold)
	result.Thresholded = th
	result.Clusters = cluster.Components(th, cluster.ComponentOptions{IncludeIsolated: opts.IncludeIsolated})
	result.Stats.ThresholdEdges = th.EdgeCount()
	result.Stats.IsolatedFiles = countIsolated(th)

	logger.Debug("thresholded graph",
		"threshold", opts.Threshold,
		"edges", th.EdgeCount(),
		"isolated", result.Stats.IsolatedFiles)
	if result.Stats.IsolatedFiles > 0 && !opts.IncludeIsolated {
		logger.Debug("files without surviving edges are not in any cluster",
			"count", result.Stats.IsolatedFiles)
	}

	result.Communities = cluster.GreedyModularity(g, cluster.ModularityOptions{Resolution: opts.Resolution})
	result.Stats.ClusterModularity = cluster.Modularity(g, result.Clusters, opts.Resolution)
	result.Stats.CommunityModularity = cluster.Modularity(g, result.Communities, opts.Resolution)
	result.Stats.ClusterTime = time.Since(clusterStart)
	hooks.OnClusterComplete(ctx, len(result.Clusters), len(result.Communities),
		result.Stats.CommunityModularity, result.Stats.ClusterTime)

	logger.Info("clustered files",
		"clusters", len(result.Clusters),
		"communities", len(result.Communities),
		"modularity", fmt.Sprintf("%.4f", result.Stats.CommunityModularity),
		"duration", result.Stats.ClusterTime)

	// Stage 3: Report
	result.Entries = report.Build(th, result.Clusters)

	return result, nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func countIsolated(g *simgraph.Graph) int {
	n := 0
	for _, id := range g.Nodes() {
		if g.Degree(id) == 0 {
			n++
		}
	}
	return n
}

// countQuoted counts records whose import path is wrapped in matching
// quotes, as extractors emit when they cannot unquote a string literal.
func countQuoted(records []simgraph.Record) int {
	n := 0
	for _, r := range records {
		p := r.ImportPath
		if len(p) >= 2 && (p[0] == '"' || p[0] == '\'') && p[len(p)-1] == p[0] {
			n++
		}
	}
	return n
}
