package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pedikit/pedikit/pkg/cache"
	"github.com/pedikit/pedikit/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "pedikit"

var (
	version = "dev"  // semantic version (e.g., "v1.2.3")
	commit  = "none" // git commit SHA
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the pedikit CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI under the given context, so signal-aware
// callers can cancel in-flight work.
func ExecuteContext(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Pedikit draws medical pedigree charts from family datasets",
		Long:         `Pedikit is a CLI tool for turning family datasets into medical pedigree charts: it validates the dataset, assigns generations, pairs co-parents, computes overlap-free coordinates, and renders the result as SVG, PNG, PDF, DOT, or a JSON layout.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("pedikit %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newAnonymizeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// newRunner creates a pipeline runner backed by the file cache, or by the
// null cache when caching is disabled or the cache directory is unavailable.
func newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	logger := loggerFromContext(ctx)

	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), logger)
	}
	dir, err := cacheDir()
	if err != nil {
		logger.Debug("cache dir unavailable, caching disabled", "error", err)
		return pipeline.NewRunner(cache.NewNullCache(), logger)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("file cache unavailable, caching disabled", "error", err)
		return pipeline.NewRunner(cache.NewNullCache(), logger)
	}
	return pipeline.NewRunner(fc, logger)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pedikit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
