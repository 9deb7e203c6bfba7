// Package render groups the visual renderers for similarity graphs.
//
// Text and JSON reports live in the report package. The subpackages here
// draw the graph itself:
//
//   - Node-link diagrams (in [nodelink] subpackage), as Graphviz DOT or SVG
//
// [nodelink]: github.com/matzehuels/importgraph/pkg/render/nodelink
package render
