// Package pipeline provides the core rendering pipeline for pedikit.
//
// This package implements the complete decode → validate → layout → render
// pipeline used by the CLI and the preview server. Centralizing it keeps
// behavior consistent across entry points and avoids duplicating caching
// logic.
//
// # Architecture
//
// The pipeline consists of four stages, run strictly in dependency order
// because each consumes the complete output of its predecessor:
//
//  1. Decode: load the individual list from a JSON or TOML dataset
//  2. Validate: collect every integrity violation; any violation aborts
//     before layout work begins
//  3. Layout: generations, partnerships, coordinates
//  4. Render: produce output artifacts (SVG, PNG, PDF, DOT, JSON, plus
//     Graphviz-drawn graph views of the raw parent links)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    InputPath: "family.json",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/pedikit/pedikit/pkg/errors"
	"github.com/pedikit/pedikit/pkg/layout"
	"github.com/pedikit/pedikit/pkg/pedigree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the PNG export scale factor (2x for high-DPI displays).
	DefaultScale = 2.0

	// TTLArtifact is how long rendered artifacts stay cached. Artifacts are
	// keyed by content hash, so the TTL only bounds disk growth.
	TTLArtifact = 7 * 24 * time.Hour
)

// Format constants for output formats. The graph formats draw the raw
// parent links through Graphviz instead of the row-based chart layout.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatDOT      = "dot"
	FormatJSON     = "json"
	FormatGraphSVG = "graph-svg"
	FormatGraphPNG = "graph-png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatDOT:      true,
	FormatJSON:     true,
	FormatGraphSVG: true,
	FormatGraphPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
type Options struct {
	// Input: either a dataset path or an already-decoded pedigree.
	// When both are set, Pedigree wins and InputPath is ignored.
	InputPath string
	Pedigree  *pedigree.Pedigree

	// Layout options, passed through to layout.Build.
	Layout layout.Options

	// Render options.
	Formats    []string
	Title      string
	HideLabels bool
	Scale      float64 // PNG scale factor

	// NoCache bypasses the artifact cache for this run.
	NoCache bool

	// Logger for stage progress. Defaults to the runner's logger.
	Logger *log.Logger
}

// SetDefaults fills unset fields with default values. It is idempotent.
func (o *Options) SetDefaults() {
	o.Layout.SetDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// Validate checks the options for the full pipeline.
func (o *Options) Validate() error {
	if o.InputPath == "" && o.Pedigree == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input path or pedigree is required")
	}
	return ValidateFormats(o.Formats)
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json, graph-svg, graph-png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Result - Pipeline Output
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Pedigree is the decoded, validated dataset.
	Pedigree *pedigree.Pedigree

	// DatasetHash is the content hash of the dataset, used for cache keys.
	DatasetHash string

	// Generations maps individual name to generation index (0 = topmost).
	Generations map[string]int

	// Partnerships are the co-parenting pairs with their children.
	Partnerships []*pedigree.Partnership

	// Layout holds the position map and effective frame.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	IndividualCount  int
	PartnershipCount int
	DecodeTime       time.Duration
	LayoutTime       time.Duration
	RenderTime       time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}
