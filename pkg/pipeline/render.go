package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/importgraph/pkg/render/nodelink"
	"github.com/matzehuels/importgraph/pkg/report"
)

// RenderOptions controls [Render].
type RenderOptions struct {
	// Boxed draws text report blocks inside terminal borders.
	Boxed bool

	// ShowImports labels diagram edges with their shared imports.
	ShowImports bool

	// HideIsolated leaves files without a surviving edge out of diagrams.
	HideIsolated bool
}

// Render formats a run result for output.
//
// Text and JSON describe both partitions. DOT and SVG draw the thresholded
// graph with nodes coloured by threshold cluster.
func Render(ctx context.Context, res *Result, format string, opts RenderOptions) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatText:
		if err := report.WriteText(&buf, res.Summary(), report.TextOptions{Boxed: opts.Boxed}); err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
	case FormatJSON:
		if err := report.WriteJSON(&buf, res.Summary()); err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
	case FormatDOT:
		buf.WriteString(dot(res, opts))
	case FormatSVG:
		svg, err := nodelink.RenderSVG(ctx, dot(res, opts))
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		buf.Write(svg)
	}
	return buf.Bytes(), nil
}

func dot(res *Result, opts RenderOptions) string {
	return nodelink.ToDOT(res.Thresholded, res.Clusters, nodelink.Options{
		ShowImports:  opts.ShowImports,
		HideIsolated: opts.HideIsolated,
	})
}
