package layout

import (
	"math"
	"slices"

	"github.com/pedikit/pedikit/pkg/pedigree"
)

// Position is the computed coordinate of one individual. Positions are
// created fresh on every Build call and carry no identity beyond it; the
// drawing layer consumes them read-only.
type Position struct {
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Generation int     `json:"generation"`
}

// Frame is the effective canvas computed during positioning. It matches the
// requested dimensions unless the pedigree needed more room: wide rows grow
// the width and deep pedigrees grow the height, so symbols are never forced
// to overlap to fit a fixed canvas.
type Frame struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result is the full output of one positioning pass.
type Result struct {
	Positions map[string]Position
	Frame     Frame
}

// Build assigns a coordinate to every individual.
//
// The computation is a pipeline of passes, each taking the previous position
// map and returning a new one:
//
//  1. Row grouping: individuals partition by generation; vertical spacing
//     fits the available height, expanding it rather than compressing rows
//     below a readable minimum.
//  2. Initial placement: each row is evenly spaced and horizontally
//     centered, never tighter than the minimum node spacing. Within a row,
//     partners are emitted adjacently (male first) the first time either is
//     encountered; otherwise dataset order rules.
//  3. Child centering: children of each partnership shift a damped fraction
//     of the way toward their parents' midpoint. The damping avoids
//     overcorrection when two partnerships pull the same child (half-sibling
//     structures).
//  4. Lone-parent alignment: an individual who is the sole recorded parent
//     of its children and belongs to no partnership snaps directly over the
//     children's centroid, bottom row first so chains of single links stack
//     vertically.
//  5. Spacing enforcement: per row, individuals sort by x and any gap below
//     the minimum pushes the right neighbor out, repeated up to one pass per
//     row member. Nodes only ever move right, so the bound guarantees
//     convergence.
//
// After Build, adjacent sorted x-coordinates within every row differ by at
// least Options.MinNodeSpacing. The drawing layer relies on this invariant.
//
// Build does not fail: a degenerate input (single individual, empty
// pedigree) degrades to a centered point or an empty map.
func Build(p *pedigree.Pedigree, gens map[string]int, parts []*pedigree.Partnership, opts Options) Result {
	opts.SetDefaults()

	rows, maxGen := groupRows(p, gens)
	frame := computeFrame(rows, maxGen, opts)

	positions := placeRows(p, parts, rows, maxGen, frame, opts)
	positions = centerChildren(positions, parts, opts)
	positions = alignLoneParents(p, parts, positions, maxGen)
	positions = enforceSpacing(positions, rows, opts)

	return Result{Positions: positions, Frame: frame}
}

// groupRows partitions individual names by generation, preserving dataset
// order within each row, and returns the highest generation index.
func groupRows(p *pedigree.Pedigree, gens map[string]int) (map[int][]string, int) {
	rows := make(map[int][]string)
	maxGen := 0
	for _, ind := range p.Individuals() {
		g := gens[ind.Name]
		rows[g] = append(rows[g], ind.Name)
		if g > maxGen {
			maxGen = g
		}
	}
	return rows, maxGen
}

// computeFrame derives the effective canvas: wide enough for the largest row
// at minimum spacing, tall enough for every generation at a readable gap.
func computeFrame(rows map[int][]string, maxGen int, opts Options) Frame {
	maxRow := 0
	for _, row := range rows {
		if len(row) > maxRow {
			maxRow = len(row)
		}
	}

	width := opts.Width
	if required := opts.Padding*2 + float64(maxRow)*opts.MinNodeSpacing(); required > width {
		width = required
	}

	height := opts.Height
	if maxGen > 0 {
		if required := opts.Padding*2 + float64(maxGen)*opts.minRowGap(); required > height {
			height = required
		}
	}

	return Frame{Width: width, Height: height}
}

// placeRows performs the initial even placement of every row.
func placeRows(p *pedigree.Pedigree, parts []*pedigree.Partnership, rows map[int][]string, maxGen int, frame Frame, opts Options) map[string]Position {
	positions := make(map[string]Position, p.Len())

	for gen := 0; gen <= maxGen; gen++ {
		row := orderRow(p, parts, rows[gen])
		if len(row) == 0 {
			continue
		}

		y := rowY(gen, maxGen, frame, opts)
		step := (frame.Width - opts.Padding*2) / float64(len(row))
		if step < opts.MinNodeSpacing() {
			step = opts.MinNodeSpacing()
		}
		start := (frame.Width - step*float64(len(row)-1)) / 2

		for i, name := range row {
			positions[name] = Position{
				Name:       name,
				X:          start + float64(i)*step,
				Y:          y,
				Generation: gen,
			}
		}
	}

	return positions
}

// rowY computes the vertical coordinate of a generation row. Rows spread
// evenly between the top and bottom padding; a single generation centers
// vertically.
func rowY(gen, maxGen int, frame Frame, opts Options) float64 {
	if maxGen == 0 {
		return frame.Height / 2
	}
	gap := (frame.Height - opts.Padding*2) / float64(maxGen)
	return opts.Padding + float64(gen)*gap
}

// orderRow emits a row's individuals in dataset order, except that the first
// time a partner of the current individual is encountered in the same row,
// both partners are emitted adjacently, male first, and marked consumed so
// neither appears again.
func orderRow(p *pedigree.Pedigree, parts []*pedigree.Partnership, row []string) []string {
	inRow := make(map[string]bool, len(row))
	for _, name := range row {
		inRow[name] = true
	}

	ordered := make([]string, 0, len(row))
	consumed := make(map[string]bool, len(row))

	for _, name := range row {
		if consumed[name] {
			continue
		}

		partner := rowPartner(parts, name, inRow, consumed)
		if partner == "" {
			ordered = append(ordered, name)
			consumed[name] = true
			continue
		}

		first, second := name, partner
		if !isMale(p, first) && isMale(p, second) {
			first, second = second, first
		}
		ordered = append(ordered, first, second)
		consumed[name] = true
		consumed[partner] = true
	}

	return ordered
}

// rowPartner finds the first unconsumed partner of name within the same row.
func rowPartner(parts []*pedigree.Partnership, name string, inRow, consumed map[string]bool) string {
	for _, part := range parts {
		if !part.Involves(name) {
			continue
		}
		other := part.Other(name)
		if inRow[other] && !consumed[other] {
			return other
		}
	}
	return ""
}

func isMale(p *pedigree.Pedigree, name string) bool {
	ind, ok := p.Individual(name)
	return ok && ind.Sex == pedigree.SexMale
}

// centerChildren returns a new position map with every partnership's
// children pulled a damped fraction toward the parents' midpoint. The pull
// is deliberately partial: a child claimed by two partnerships through a
// shared parent would otherwise be snapped back and forth.
func centerChildren(positions map[string]Position, parts []*pedigree.Partnership, opts Options) map[string]Position {
	next := clonePositions(positions)

	for _, part := range parts {
		pa, okA := next[part.PartnerA]
		pb, okB := next[part.PartnerB]
		if !okA || !okB {
			continue
		}

		var sum float64
		var placed []string
		for _, child := range part.Children {
			if pos, ok := next[child]; ok {
				sum += pos.X
				placed = append(placed, child)
			}
		}
		if len(placed) == 0 {
			continue
		}

		midpoint := (pa.X + pb.X) / 2
		centroid := sum / float64(len(placed))
		shift := opts.CenteringPull * (midpoint - centroid)

		for _, child := range placed {
			pos := next[child]
			pos.X += shift
			next[child] = pos
		}
	}

	return next
}

// alignLoneParents returns a new position map where every individual who has
// recorded children but belongs to no partnership snaps to the centroid of
// its children. This places a single-link ancestor directly above its child
// instead of at an independently centered x. Rows process bottom-up so a
// chain of single links stacks onto the already-aligned level below.
func alignLoneParents(p *pedigree.Pedigree, parts []*pedigree.Partnership, positions map[string]Position, maxGen int) map[string]Position {
	next := clonePositions(positions)

	partnered := make(map[string]bool)
	for _, part := range parts {
		partnered[part.PartnerA] = true
		partnered[part.PartnerB] = true
	}

	for gen := maxGen; gen >= 0; gen-- {
		for _, ind := range p.Individuals() {
			pos, ok := next[ind.Name]
			if !ok || pos.Generation != gen || partnered[ind.Name] {
				continue
			}

			var sum float64
			var count int
			for _, child := range p.ChildrenOf(ind.Name) {
				if cp, ok := next[child.Name]; ok {
					sum += cp.X
					count++
				}
			}
			if count == 0 {
				continue
			}

			pos.X = sum / float64(count)
			next[ind.Name] = pos
		}
	}

	return next
}

// enforceSpacing returns a new position map where, per row, any individual
// closer than the minimum spacing to its left neighbor is pushed to exactly
// neighbor.x + spacing. Centering and alignment can reintroduce collisions
// the initial placement had resolved, so this runs last.
//
// Each sweep sorts by current x and fixes violations left to right; pushing
// a node right can create at most one new violation further right, so one
// pass per row member always reaches the fixed point.
func enforceSpacing(positions map[string]Position, rows map[int][]string, opts Options) map[string]Position {
	next := clonePositions(positions)
	spacing := opts.MinNodeSpacing()

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}

		passes := opts.SpacingPasses
		if passes <= 0 {
			passes = len(row)
		}

		for pass := 0; pass < passes; pass++ {
			sorted := slices.Clone(row)
			slices.SortStableFunc(sorted, func(a, b string) int {
				switch {
				case next[a].X < next[b].X:
					return -1
				case next[a].X > next[b].X:
					return 1
				}
				return 0
			})

			moved := false
			for i := 1; i < len(sorted); i++ {
				left := next[sorted[i-1]]
				curr := next[sorted[i]]
				if gap := curr.X - left.X; gap < spacing-1e-9 {
					curr.X = left.X + spacing
					next[sorted[i]] = curr
					moved = true
				}
			}
			if !moved {
				break
			}
		}
	}

	return next
}

func clonePositions(positions map[string]Position) map[string]Position {
	next := make(map[string]Position, len(positions))
	for name, pos := range positions {
		next[name] = pos
	}
	return next
}

// Bounds returns the bounding box of all positions, padded by pad on every
// side. Returns a zero rectangle for an empty map.
func Bounds(positions map[string]Position, pad float64) (minX, minY, maxX, maxY float64) {
	if len(positions) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxX = math.Max(maxX, pos.X)
		maxY = math.Max(maxY, pos.Y)
	}
	return minX - pad, minY - pad, maxX + pad, maxY + pad
}
