// Package nodelink renders file similarity graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, colouring nodes by cluster, then render to SVG:
//
//	th := g.Threshold(3)
//	dot := nodelink.ToDOT(th, cluster.Components(th, cluster.ComponentOptions{}), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] emits an undirected graph laid out with neato. Each edge is
// labelled with its weight, or with its shared imports when
// [Options.ShowImports] is set, and drawn thicker as the weight grows.
// The DOT text can also be piped into external Graphviz tools.
//
// # Dependencies
//
// [RenderSVG] uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly, so no system installation is needed.
package nodelink
