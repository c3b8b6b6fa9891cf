package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts a report to Graphviz DOT format: one node per source file,
// one node per dependency, edges from file to dependency. Outdated
// dependencies are highlighted.
func (r *Report) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, f := range r.Files {
		fmt.Fprintf(&buf, "  %q [fillcolor=lightblue];\n", f.SourceFile)
	}
	buf.WriteString("\n")

	seen := make(map[string]bool)
	for _, f := range r.Files {
		for _, d := range f.Dependencies {
			if !seen[d.Name] {
				seen[d.Name] = true
				label := d.Name
				if d.Current != "" {
					label += "\n" + d.Current
				}
				attrs := fmt.Sprintf("label=%q", label)
				if d.Status == "update-available" {
					attrs += ", fillcolor=lightyellow"
				}
				fmt.Fprintf(&buf, "  %q [%s];\n", d.Name, attrs)
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", f.SourceFile, d.Name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using in-process Graphviz.
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
	return buf.Bytes(), nil
}
