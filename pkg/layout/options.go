// Package layout computes pedigree diagram geometry: a generation (row) for
// every individual, a 2D coordinate per individual satisfying minimum-spacing
// and centering constraints, and the ancestry facts (consanguinity, twin
// groups) the drawing layer needs to connect symbols correctly.
//
// The package is pure computation: no I/O, no shared state, no goroutines.
// Each call allocates its own intermediate structures, so concurrent layouts
// of different pedigrees need no coordination. Components must run in
// dependency order within one render: generations, then partnerships
// (pkg/pedigree), then positions.
//
// All functions assume a pedigree that passed pedigree.Validate. They are
// written to terminate on invalid graphs (unknown parents, cycles) but make
// no promise about the usefulness of the result in that case.
package layout

// Layout defaults. Width and height follow the default SVG viewport; the
// symbol size leaves room for two stacked label lines under each symbol at
// the default spacing.
const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultSymbolSize = 30.0
	DefaultPadding    = 50.0

	// DefaultCenteringPull is the damped fraction of the parent-midpoint
	// offset applied to children per centering pass. Tuned empirically; the
	// exact value is not load-bearing for correctness, which depends only on
	// the final minimum-spacing invariant.
	DefaultCenteringPull = 0.30

	// spacingFactor derives the minimum horizontal gap from the symbol size.
	// 4x leaves room for a symbol plus its stacked text labels.
	spacingFactor = 4
)

// Options configures coordinate assignment.
// The zero value is not usable directly; call SetDefaults or use the
// constants above.
type Options struct {
	// Width and Height are the target canvas dimensions. Both are lower
	// bounds: the effective canvas grows when the pedigree needs more room,
	// it is never compressed to fit.
	Width  float64
	Height float64

	// SymbolSize is the drawn symbol edge/diameter, from which the minimum
	// node spacing is derived.
	SymbolSize float64

	// Padding is the margin between the canvas edge and the outermost
	// symbols.
	Padding float64

	// CenteringPull is the damping factor for the child-centering pass,
	// in (0, 1]. Zero selects DefaultCenteringPull.
	CenteringPull float64

	// SpacingPasses bounds the spacing-enforcement iterations per row.
	// Zero selects one pass per individual in the row, which is always
	// sufficient for the push-right strategy.
	SpacingPasses int
}

// SetDefaults fills unset fields with default values.
// It is idempotent.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.SymbolSize == 0 {
		o.SymbolSize = DefaultSymbolSize
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.CenteringPull == 0 {
		o.CenteringPull = DefaultCenteringPull
	}
}

// MinNodeSpacing returns the minimum horizontal distance enforced between
// any two individuals in the same generation row.
func (o Options) MinNodeSpacing() float64 {
	return o.SymbolSize * spacingFactor
}

// minRowGap is the smallest readable vertical distance between generation
// rows. Generations are never compressed below this; the canvas grows
// instead.
func (o Options) minRowGap() float64 {
	return o.SymbolSize * spacingFactor
}
