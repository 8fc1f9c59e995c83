package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/amastis/pyinstaller-excluder/pkg/deps"
)

// Options configures graph rendering.
type Options struct {
	// Detailed adds the number of direct dependencies to node labels.
	Detailed bool

	// HideExcluded leaves excluded packages out of the graph.
	HideExcluded bool
}

// ToDOT converts a closure and its exclusion set to Graphviz DOT format.
// Nodes and edges are emitted in sorted order so the output is stable.
func ToDOT(c *deps.Closure, exclusions []string, opts Options) string {
	edges := c.Edges()
	missing := deps.NewNameSet(c.Missing()...)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, name := range c.Set().Names() {
		label := fmtLabel(name, len(edges[name]), opts.Detailed)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		switch {
		case missing.Has(name):
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=mistyrose", "color=red")
		case c.IsRoot(name):
			attrs = append(attrs, "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(attrs, ", "))
	}

	if !opts.HideExcluded && len(exclusions) > 0 {
		buf.WriteString("\n")
		for _, name := range exclusions {
			fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey, fontcolor=gray30];\n", name, name)
		}
	}

	buf.WriteString("\n")
	for _, from := range slices.Sorted(maps.Keys(edges)) {
		for _, to := range edges[from] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(name string, requires int, detailed bool) string {
	if !detailed {
		return name
	}
	return fmt.Sprintf("%s\nrequires: %d", name, requires)
}
