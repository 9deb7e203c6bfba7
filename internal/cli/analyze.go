package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/importgraph/pkg/config"
	"github.com/matzehuels/importgraph/pkg/errors"
	graphio "github.com/matzehuels/importgraph/pkg/io"
	"github.com/matzehuels/importgraph/pkg/pipeline"
)

// analyzeOpts holds the analyze command's flag values.
type analyzeOpts struct {
	configPath      string
	format          string
	threshold       int
	resolution      float64
	includeIsolated bool
	inputFormat     string
	featureType     string
	dsn             string
	table           string
	boxed           bool
	showImports     bool
	hideIsolated    bool
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{format: pipeline.FormatText}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Cluster files by shared imports",
		Long: `Analyze reads (file, import) records and prints clusters of similar files.

Records come from a CSV or JSON file, from stdin when the file is "-", or from
a Postgres feature table when no file is given and a DSN is configured.

The report lists the threshold clusters (connected components after dropping
edges lighter than --threshold), the greedy modularity communities, and for
each threshold cluster the imports shared inside it.`,
		Example: `  # CSV feature export, edges need 3 shared imports
  importgraph analyze features.csv -t 3

  # JSON records from stdin, Graphviz output
  extract-imports | importgraph analyze - --input-format json -f dot

  # Postgres table
  IMPORTGRAPH_DSN=postgres://localhost/ast importgraph analyze --table ast_flat`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runAnalyze(cmd, args, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (.toml, .yaml)")
	flags.StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json, dot, svg")
	flags.IntVarP(&opts.threshold, "threshold", "t", pipeline.DefaultThreshold, "minimum shared imports for an edge to survive")
	flags.Float64Var(&opts.resolution, "resolution", pipeline.DefaultResolution, "modularity resolution (>1 favours smaller communities)")
	flags.BoolVar(&opts.includeIsolated, "include-isolated", false, "report files without surviving edges as singleton clusters")
	flags.StringVar(&opts.inputFormat, "input-format", "", "input format: csv, json (default: from file extension)")
	flags.StringVar(&opts.featureType, "feature-type", graphio.DefaultFeatureType, "feature type to keep from CSV exports and Postgres")
	flags.StringVar(&opts.dsn, "dsn", "", "Postgres connection string (default $"+config.EnvDSN+")")
	flags.StringVar(&opts.table, "table", graphio.DefaultTable, "Postgres feature table")
	flags.BoolVar(&opts.boxed, "boxed", false, "draw text report blocks in boxes")
	flags.BoolVar(&opts.showImports, "show-imports", false, "label diagram edges with shared imports")
	flags.BoolVar(&opts.hideIsolated, "hide-isolated", false, "leave files without surviving edges out of diagrams")

	return cmd
}

// resolveConfig layers defaults, the config file, the environment and
// explicitly set flags, then validates the result.
func (o analyzeOpts) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Threshold = o.threshold
	}
	if flags.Changed("resolution") {
		cfg.Resolution = o.resolution
	}
	if flags.Changed("include-isolated") {
		cfg.IncludeIsolated = o.includeIsolated
	}
	if flags.Changed("input-format") {
		cfg.Input.Format = o.inputFormat
	}
	if flags.Changed("feature-type") {
		cfg.Input.FeatureType = o.featureType
	}
	if flags.Changed("dsn") {
		cfg.Postgres.DSN = o.dsn
	}
	if flags.Changed("table") {
		cfg.Postgres.Table = o.table
	}
	cfg.ApplyEnv()

	return cfg, cfg.Validate()
}

func (c *CLI) runAnalyze(cmd *cobra.Command, args []string, cfg config.Config, opts analyzeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	src, closeSrc, err := c.openSource(ctx, cmd, args, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	logger.Debug("analyzing", "source", src.Describe(),
		"threshold", cfg.Threshold, "resolution", cfg.Resolution)

	result, err := c.newRunner().Execute(ctx, src, pipeline.Options{
		Threshold:       cfg.Threshold,
		Resolution:      cfg.Resolution,
		IncludeIsolated: cfg.IncludeIsolated,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	out, err := pipeline.Render(ctx, result, opts.format, pipeline.RenderOptions{
		Boxed:        opts.boxed,
		ShowImports:  opts.showImports,
		HideIsolated: opts.hideIsolated,
	})
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	prog.done("analyzed", "files", result.Stats.Files, "records", result.Stats.Records)
	printStats(result.Stats.Files, result.Stats.Edges, len(result.Clusters), len(result.Communities))
	if n := result.Stats.IsolatedFiles; n > 0 && !cfg.IncludeIsolated {
		printWarning("%d files have no edge at threshold %d and are in no cluster (see --include-isolated)", n, cfg.Threshold)
	}
	return nil
}

// openSource picks the record source for args and cfg. The returned close
// function must always be called.
func (c *CLI) openSource(ctx context.Context, cmd *cobra.Command, args []string, cfg config.Config) (graphio.Source, func(), error) {
	noop := func() {}
	ioOpts := graphio.Options{Format: cfg.Input.Format, FeatureType: cfg.Input.FeatureType}

	switch {
	case len(args) == 1 && args[0] == "-":
		return graphio.ReaderSource{Name: "stdin", R: cmd.InOrStdin(), Options: ioOpts}, noop, nil
	case len(args) == 1:
		return graphio.FileSource{Path: args[0], Options: ioOpts}, noop, nil
	case cfg.Postgres.DSN != "":
		spinner := newSpinnerWithContext(ctx, "Connecting to Postgres...")
		spinner.Start()
		src, err := graphio.NewPGSource(ctx, graphio.PGOptions{
			DSN:         cfg.Postgres.DSN,
			Table:       cfg.Postgres.Table,
			FeatureType: cfg.Input.FeatureType,
		})
		if err != nil {
			if spinner.Cancelled() {
				spinner.Stop()
				return nil, noop, ctx.Err()
			}
			spinner.StopWithError("Postgres connection failed")
			return nil, noop, err
		}
		spinner.StopWithSuccess("Connected to Postgres")
		printInfo("Reading %s", src.Describe())
		return src, src.Close, nil
	default:
		return nil, noop, errors.New(errors.ErrCodeInvalidInput,
			"no input: pass a file, \"-\" for stdin, or a Postgres DSN via --dsn or $%s", config.EnvDSN)
	}
}
