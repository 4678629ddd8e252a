package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pedikit/pedikit/pkg/cache"
	"github.com/pedikit/pedikit/pkg/errors"
	"github.com/pedikit/pedikit/pkg/layout"
	"github.com/pedikit/pedikit/pkg/pedigree"
	"github.com/pedikit/pedikit/pkg/render"
)

// Runner executes the pedigree pipeline with caching.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching and a
// nil logger discards output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the full pipeline: decode, validate, layout, render.
//
// The returned Result always carries the decoded pedigree, the layout, and
// one artifact per requested format. Validation failures return the
// aggregated *errors.ValidationError so callers can print every violation.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: decode.
	start := time.Now()
	ped := opts.Pedigree
	if ped == nil {
		var err error
		ped, err = pedigree.ImportFile(opts.InputPath)
		if err != nil {
			return nil, err
		}
	}
	result.Pedigree = ped
	result.Stats.DecodeTime = time.Since(start)
	result.Stats.IndividualCount = ped.Len()
	logger.Debug("decoded dataset", "individuals", ped.Len(), "duration", result.Stats.DecodeTime)

	// Stage 2: validate. Every violation is collected before returning.
	if err := pedigree.Validate(ped); err != nil {
		return nil, err
	}

	canonical, err := pedigree.WriteJSON(ped)
	if err != nil {
		return nil, err
	}
	result.DatasetHash = cache.Hash(canonical)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: layout.
	start = time.Now()
	result.Generations = layout.AssignGenerations(ped)
	result.Partnerships = pedigree.BuildPartnerships(ped)
	result.Layout = layout.Build(ped, result.Generations, result.Partnerships, opts.Layout)
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.PartnershipCount = len(result.Partnerships)
	logger.Debug("computed layout",
		"partnerships", result.Stats.PartnershipCount,
		"width", result.Layout.Frame.Width,
		"height", result.Layout.Frame.Height,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: render, artifact by artifact, cache first.
	start = time.Now()
	allHit := true
	for _, format := range opts.Formats {
		key := cache.ArtifactKey(result.DatasetHash, format,
			opts.Layout, opts.Title, opts.HideLabels, opts.Scale)

		if !opts.NoCache {
			if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
				logger.Debug("artifact cache hit", "format", format)
				result.Artifacts[format] = data
				continue
			}
		}
		allHit = false

		data, err := r.renderArtifact(format, result, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data

		if !opts.NoCache {
			if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
				logger.Warn("artifact cache write failed", "format", format, "error", err)
			}
		}
	}
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = allHit && len(opts.Formats) > 0
	logger.Debug("rendered artifacts",
		"formats", opts.Formats,
		"cached", result.CacheInfo.RenderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderArtifact produces a single output format from the computed layout.
func (r *Runner) renderArtifact(format string, result *Result, opts Options) ([]byte, error) {
	svgOpts := []render.SVGOption{
		render.WithPartnerships(result.Partnerships),
		render.WithSymbolSize(opts.Layout.SymbolSize),
	}
	if opts.HideLabels {
		svgOpts = append(svgOpts, render.WithoutLabels())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, render.WithTitle(opts.Title))
	}

	switch format {
	case FormatSVG:
		return render.RenderSVG(result.Layout, result.Pedigree, svgOpts...), nil
	case FormatPNG:
		svg := render.RenderSVG(result.Layout, result.Pedigree, svgOpts...)
		return render.ToPNG(svg, opts.Scale)
	case FormatPDF:
		svg := render.RenderSVG(result.Layout, result.Pedigree, svgOpts...)
		return render.ToPDF(svg)
	case FormatDOT:
		return []byte(render.ToDOT(result.Pedigree)), nil
	case FormatGraphSVG:
		return render.RenderGraphSVG(render.ToDOT(result.Pedigree))
	case FormatGraphPNG:
		return render.RenderGraphPNG(render.ToDOT(result.Pedigree), opts.Scale)
	case FormatJSON:
		return marshalLayout(result)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

// Close releases the runner's resources.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// layoutDocument is the JSON export shape: the computed coordinates plus the
// derived structure, in dataset order so output is reproducible.
type layoutDocument struct {
	Frame        layout.Frame          `json:"frame"`
	Positions    []layout.Position     `json:"positions"`
	Partnerships []partnershipDocument `json:"partnerships,omitempty"`
}

type partnershipDocument struct {
	Father   string   `json:"father"`
	Mother   string   `json:"mother"`
	Children []string `json:"children"`
}

// marshalLayout serializes the layout result as pretty-printed JSON.
func marshalLayout(result *Result) ([]byte, error) {
	doc := layoutDocument{Frame: result.Layout.Frame}

	for _, ind := range result.Pedigree.Individuals() {
		if pos, ok := result.Layout.Positions[ind.Name]; ok {
			doc.Positions = append(doc.Positions, pos)
		}
	}
	for _, part := range result.Partnerships {
		doc.Partnerships = append(doc.Partnerships, partnershipDocument{
			Father:   part.PartnerA,
			Mother:   part.PartnerB,
			Children: part.Children,
		})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return append(out, '\n'), nil
}
