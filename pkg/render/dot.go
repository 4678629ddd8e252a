package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pedikit/pedikit/pkg/pedigree"
)

// ToDOT converts the raw parent graph to Graphviz DOT format for a
// node-link debug view. Node shapes follow the pedigree symbol convention:
// box for male, ellipse for female, diamond for unknown. Edges run from
// parent to child.
//
// The resulting DOT string can be rendered with [RenderGraphSVG] or
// [RenderGraphPNG].
func ToDOT(p *pedigree.Pedigree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pedigree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, ind := range p.Individuals() {
		attrs := nodeAttrs(ind)
		fmt.Fprintf(&buf, "  %q [%s];\n", ind.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, ind := range p.Individuals() {
		if ind.Mother != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", ind.Mother, ind.Name)
		}
		if ind.Father != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", ind.Father, ind.Name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(ind *pedigree.Individual) []string {
	shape := "diamond"
	switch ind.Sex {
	case pedigree.SexMale:
		shape = "box"
	case pedigree.SexFemale:
		shape = "ellipse"
	}

	attrs := []string{fmt.Sprintf("shape=%s", shape)}
	if ind.Affected {
		attrs = append(attrs, "fillcolor=grey30", "fontcolor=white")
	}
	return attrs
}

// RenderGraphSVG renders a DOT graph to SVG using Graphviz.
func RenderGraphSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

// RenderGraphPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderGraphPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderGraphSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
