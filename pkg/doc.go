// Package pkg provides the core libraries for importgraph.
//
// # Overview
//
// importgraph groups source files by the imports they have in common. Every
// file becomes a node, and two files are joined by an edge weighted by the
// number of distinct import paths both of them use. The graph is then
// clustered twice: once by dropping weak edges and taking connected
// components, and once by greedy modularity maximization over the full
// weighted graph.
//
// # Architecture
//
// The typical data flow:
//
//	CSV / JSON / PostgreSQL
//	         ↓
//	    [io] package (load (filename, import path) records)
//	         ↓
//	    [simgraph] package (inverted index + weighted similarity graph)
//	         ↓
//	    [simgraph/cluster] package (threshold components, CNM communities)
//	         ↓
//	    [report] package (per-cluster files and shared imports)
//	         ↓
//	    text / JSON / DOT / SVG output
//
// [pipeline] ties the stages together and [observability] lets callers
// observe each one.
//
// # Quick Start
//
//	records, err := io.ImportFile("features.csv", io.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := pipeline.NewRunner(nil).Run(ctx, records, pipeline.Options{Threshold: 5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report.WriteText(os.Stdout, res.Summary(), report.TextOptions{})
//
// # Error Handling
//
// Errors carry a code from [errors] so callers can tell bad input from a bad
// configuration or an unreachable database:
//
//	if errors.Is(err, errors.ErrCodeMalformedInput) {
//	    // a record was missing a field
//	}
package pkg
