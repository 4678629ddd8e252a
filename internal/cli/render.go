package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pedikit/pedikit/pkg/layout"
	"github.com/pedikit/pedikit/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats, any of pipeline.ValidFormats
	width      float64  // frame width in pixels
	height     float64  // frame height in pixels
	symbolSize float64  // symbol edge length / diameter in pixels
	title      string   // title line at the top of the chart
	noLabels   bool     // suppress name labels under symbols
	scale      float64  // PNG scale factor
	noCache    bool     // bypass the artifact cache
}

// newRenderCmd creates the render command for generating pedigree charts.
// It supports multiple output formats in one run: the chart renderers (SVG,
// PNG, PDF), the layout export (JSON), and the Graphviz graph views (DOT,
// graph-svg, graph-png).
//
// Default settings:
//   - format: svg
//   - width: 800px, height: 600px, symbol size: 30px
//   - scale: 2.0 (PNG)
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		width:      layout.DefaultWidth,
		height:     layout.DefaultHeight,
		symbolSize: layout.DefaultSymbolSize,
		scale:      pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a pedigree dataset to chart artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json, graph-svg, graph-png (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().Float64Var(&opts.symbolSize, "symbol-size", opts.symbolSize, "symbol size in pixels")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "hide name labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// runRender executes the pipeline and writes one file per requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner := newRunner(ctx, opts.noCache)
	defer runner.Close()

	spin := newSpinner(ctx, fmt.Sprintf("Rendering %s", input))
	spin.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		InputPath: input,
		Layout: layout.Options{
			Width:      opts.width,
			Height:     opts.height,
			SymbolSize: opts.symbolSize,
		},
		Formats:    opts.formats,
		Title:      opts.title,
		HideLabels: opts.noLabels,
		Scale:      opts.scale,
		NoCache:    opts.noCache,
		Logger:     logger,
	})
	spin.Stop()
	if err != nil {
		return err
	}

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	prog.done(fmt.Sprintf("Rendered %d individuals across %d generations",
		result.Stats.IndividualCount, generationCount(result.Generations)))
	printStats(result.Stats.IndividualCount, result.Stats.PartnershipCount, result.CacheInfo.RenderHit)
	return nil
}

// outputPath derives the output file path for one format. A single format
// uses output verbatim when given; multiple formats treat output as a base
// path and append the format extension.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

// generationCount returns the number of distinct generation rows.
func generationCount(gens map[string]int) int {
	seen := make(map[int]bool)
	for _, g := range gens {
		seen[g] = true
	}
	return len(seen)
}
