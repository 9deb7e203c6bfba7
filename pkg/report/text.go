package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/importgraph/pkg/simgraph/cluster"
)

const rule = "---------------------------"

// TextOptions controls [WriteText].
type TextOptions struct {
	// Boxed draws each cluster block inside a lipgloss border instead of
	// dashed rules. Intended for terminals.
	Boxed bool
}

var (
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true)
)

// WriteText writes the console report:
//
//	Clusters based on thresholding: [{A, B}]
//	Cluster sizes: [2]
//	Communities detected via greedy modularity: [{A, B, C}]
//	Cluster 0
//	---------------------------
//	Files in this cluster
//	A
//	B
//	Imports shared by the files in this cluster
//	os,sys
//	---------------------------
func WriteText(w io.Writer, s Summary, opts TextOptions) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Clusters based on thresholding: %s\n", cluster.Format(s.Clusters))
	fmt.Fprintf(&b, "Cluster sizes: %v\n", cluster.Sizes(s.Clusters))
	fmt.Fprintf(&b, "Communities detected via greedy modularity: %s\n", cluster.Format(s.Communities))

	for _, e := range s.Entries {
		if opts.Boxed {
			b.WriteString(boxed(e))
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "Cluster %d\n", e.ID)
		b.WriteString(rule + "\n")
		b.WriteString("Files in this cluster\n")
		for _, f := range e.Files {
			b.WriteString(f + "\n")
		}
		b.WriteString("Imports shared by the files in this cluster\n")
		b.WriteString(strings.Join(e.SharedImports, ",") + "\n")
		b.WriteString(rule + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func boxed(e Entry) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Cluster %d", e.ID)),
		labelStyle.Render("Files in this cluster"),
	}
	lines = append(lines, e.Files...)
	lines = append(lines,
		labelStyle.Render("Imports shared by the files in this cluster"),
		strings.Join(e.SharedImports, ","),
	)
	return boxStyle.Render(strings.Join(lines, "\n"))
}
