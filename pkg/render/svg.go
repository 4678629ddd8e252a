// Package render turns computed pedigree layouts into output artifacts.
//
// The SVG sink draws genetics-counseling symbols (square = male, circle =
// female, diamond = unknown) and the connecting lines between them:
// partnership lines (doubled for consanguineous pairs), sibship drops, and
// twin fans with a joining bar for monozygotic groups. PNG and PDF outputs
// convert from SVG via rsvg-convert; the DOT view renders the raw parent
// graph through Graphviz for debugging.
package render

import (
	"bytes"
	"fmt"

	"github.com/pedikit/pedikit/pkg/layout"
	"github.com/pedikit/pedikit/pkg/pedigree"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	ped        *pedigree.Pedigree
	parts      []*pedigree.Partnership
	symbolSize float64
	showLabels bool
	title      string
}

// WithPartnerships supplies the partnership list so partner and sibship
// lines can be drawn. Without it only symbols and labels are emitted.
func WithPartnerships(parts []*pedigree.Partnership) SVGOption {
	return func(r *svgRenderer) { r.parts = parts }
}

// WithSymbolSize overrides the drawn symbol size. It should match the
// layout's symbol size so the spacing guarantees hold visually.
func WithSymbolSize(s float64) SVGOption {
	return func(r *svgRenderer) { r.symbolSize = s }
}

// WithoutLabels suppresses the name labels under each symbol.
func WithoutLabels() SVGOption {
	return func(r *svgRenderer) { r.showLabels = false }
}

// WithTitle adds a title line at the top of the diagram.
func WithTitle(title string) SVGOption {
	return func(r *svgRenderer) { r.title = title }
}

// RenderSVG renders the pedigree layout as an SVG document.
//
// Connector lines draw first so symbols paint over them; output is
// deterministic for identical inputs because every loop follows dataset
// order.
func RenderSVG(res layout.Result, p *pedigree.Pedigree, opts ...SVGOption) []byte {
	r := svgRenderer{
		ped:        p,
		symbolSize: layout.DefaultSymbolSize,
		showLabels: true,
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		res.Frame.Width, res.Frame.Height, res.Frame.Width, res.Frame.Height)
	buf.WriteString(`  <g fill="none" stroke="#222" stroke-width="1.5">` + "\n")

	for _, part := range r.parts {
		r.renderPartnership(&buf, res.Positions, part)
	}

	buf.WriteString("  </g>\n")

	for _, ind := range p.Individuals() {
		pos, ok := res.Positions[ind.Name]
		if !ok {
			continue
		}
		r.renderSymbol(&buf, ind, pos)
		if r.showLabels {
			r.renderLabel(&buf, ind, pos)
		}
	}

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="24" text-anchor="middle" font-family="sans-serif" font-size="16" fill="#222">%s</text>`+"\n",
			res.Frame.Width/2, escapeText(r.title))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderPartnership draws the horizontal partner line, the vertical drop to
// the sibship bus, the bus itself, and one stub per child. Consanguineous
// partners get the conventional doubled line; monozygotic twin groups among
// the children get a joining bar between their stubs.
func (r *svgRenderer) renderPartnership(buf *bytes.Buffer, positions map[string]layout.Position, part *pedigree.Partnership) {
	pa, okA := positions[part.PartnerA]
	pb, okB := positions[part.PartnerB]
	if !okA || !okB {
		return
	}

	half := r.symbolSize / 2

	left, right := pa, pb
	if right.X < left.X {
		left, right = right, left
	}

	consang := r.ped != nil && layout.IsConsanguineous(r.ped, part.PartnerA, part.PartnerB)
	line(buf, left.X+half, left.Y, right.X-half, right.Y)
	if consang {
		line(buf, left.X+half, left.Y-3, right.X-half, right.Y-3)
	}

	var children []layout.Position
	for _, child := range part.Children {
		if pos, ok := positions[child]; ok {
			children = append(children, pos)
		}
	}
	if len(children) == 0 {
		return
	}

	midX := (pa.X + pb.X) / 2
	busY := children[0].Y - r.symbolSize*1.5
	line(buf, midX, pa.Y, midX, busY)

	minX, maxX := children[0].X, children[0].X
	for _, c := range children[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
	}
	if len(children) > 1 {
		line(buf, minX, busY, maxX, busY)
	}

	for _, c := range children {
		line(buf, c.X, busY, c.X, c.Y-half)
	}

	r.renderTwinBars(buf, positions, part, busY, half)
}

// renderTwinBars draws the monozygotic joining bar between co-twin stubs.
// Dizygotic twins share only the fan-out point, so they get no bar.
func (r *svgRenderer) renderTwinBars(buf *bytes.Buffer, positions map[string]layout.Position, part *pedigree.Partnership, busY, half float64) {
	if r.ped == nil {
		return
	}

	done := make(map[string]bool)
	for _, child := range part.Children {
		if done[child] {
			continue
		}
		twins := layout.CoTwins(r.ped, child, pedigree.TwinMonozygotic)
		if len(twins) == 0 {
			continue
		}

		group := []string{child}
		done[child] = true
		for _, t := range twins {
			group = append(group, t.Name)
			done[t.Name] = true
		}

		minX, maxX := 0.0, 0.0
		barY := busY
		first := true
		for _, name := range group {
			pos, ok := positions[name]
			if !ok {
				continue
			}
			if first {
				minX, maxX = pos.X, pos.X
				barY = (busY + pos.Y - half) / 2
				first = false
				continue
			}
			if pos.X < minX {
				minX = pos.X
			}
			if pos.X > maxX {
				maxX = pos.X
			}
		}
		if !first && maxX > minX {
			line(buf, minX, barY, maxX, barY)
		}
	}
}

// renderSymbol draws the sex symbol: filled when affected, slashed when
// deceased, with a proband arrow at the lower left.
func (r *svgRenderer) renderSymbol(buf *bytes.Buffer, ind *pedigree.Individual, pos layout.Position) {
	half := r.symbolSize / 2
	fill := "#fff"
	if ind.Affected {
		fill = "#333"
	}

	switch ind.Sex {
	case pedigree.SexMale:
		fmt.Fprintf(buf, `  <rect id="sym-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#222" stroke-width="1.5"/>`+"\n",
			escapeText(ind.Name), pos.X-half, pos.Y-half, r.symbolSize, r.symbolSize, fill)
	case pedigree.SexFemale:
		fmt.Fprintf(buf, `  <circle id="sym-%s" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#222" stroke-width="1.5"/>`+"\n",
			escapeText(ind.Name), pos.X, pos.Y, half, fill)
	default:
		fmt.Fprintf(buf, `  <polygon id="sym-%s" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="#222" stroke-width="1.5"/>`+"\n",
			escapeText(ind.Name),
			pos.X, pos.Y-half, pos.X+half, pos.Y, pos.X, pos.Y+half, pos.X-half, pos.Y, fill)
	}

	if ind.Deceased {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#222" stroke-width="1.5"/>`+"\n",
			pos.X-half-4, pos.Y+half+4, pos.X+half+4, pos.Y-half-4)
	}
	if ind.Proband {
		fmt.Fprintf(buf, `  <path d="M %.1f %.1f L %.1f %.1f M %.1f %.1f l -6 2 l 2 -6 z" stroke="#222" stroke-width="1.5" fill="#222"/>`+"\n",
			pos.X-half-14, pos.Y+half+14, pos.X-half-4, pos.Y+half+4,
			pos.X-half-4, pos.Y+half+4)
	}
}

// renderLabel draws the name under the symbol, with the optional note on a
// second line.
func (r *svgRenderer) renderLabel(buf *bytes.Buffer, ind *pedigree.Individual, pos layout.Position) {
	half := r.symbolSize / 2
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="11" fill="#222">%s</text>`+"\n",
		pos.X, pos.Y+half+14, escapeText(ind.Name))
	if ind.Note != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="9" fill="#555">%s</text>`+"\n",
			pos.X, pos.Y+half+26, escapeText(ind.Note))
	}
}

func line(buf *bytes.Buffer, x1, y1, x2, y2 float64) {
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x1, y1, x2, y2)
}

// escapeText escapes the XML special characters for text content and
// attribute values.
func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
