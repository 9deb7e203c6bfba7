package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/importgraph/pkg/simgraph"
	"github.com/matzehuels/importgraph/pkg/simgraph/cluster"
)

// Options configures similarity diagram rendering.
type Options struct {
	// ShowImports labels each edge with its shared import paths instead of
	// only the weight.
	ShowImports bool

	// HideIsolated omits files that have no edges.
	HideIsolated bool
}

// palette fills the nodes of cluster i with palette[i%len(palette)].
var palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// ToDOT converts a similarity graph to undirected Graphviz DOT.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Nodes belonging to clusters[i] share a fill colour; files outside every
// cluster stay white. Edge pen width grows with weight.
func ToDOT(g *simgraph.Graph, clusters []cluster.Cluster, opts Options) string {
	fill := make(map[string]string)
	for i, c := range clusters {
		for _, id := range c {
			fill[id] = palette[i%len(palette)]
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#666666\", fontsize=10];\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		if opts.HideIsolated && g.Degree(id) == 0 {
			continue
		}
		attrs := []string{fmt.Sprintf("label=%q", id)}
		if c, ok := fill[id]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		label := strconv.Itoa(e.Weight)
		if opts.ShowImports {
			label = strings.Join(e.Imports, "\n")
		}
		fmt.Fprintf(&buf, "  %q -- %q [label=%q, weight=%d, penwidth=%s];\n",
			e.U, e.V, label, e.Weight, penWidth(e.Weight))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func penWidth(weight int) string {
	w := 1 + 0.5*float64(weight-1)
	if w > 6 {
		w = 6
	}
	return strconv.FormatFloat(w, 'f', 1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from a
// zero origin at its natural size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
