package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/pedikit/pedikit/pkg/layout"
	"github.com/pedikit/pedikit/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	title   string
	noCache bool
}

// newServeCmd creates the serve command: a local preview server that
// re-renders the dataset on every request, so editing the file and
// refreshing the browser shows the updated chart.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a live browser preview of the pedigree chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:8423", "listen address")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func runServe(ctx context.Context, input string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	runner := newRunner(ctx, opts.noCache)
	defer runner.Close()

	execute := func(ctx context.Context, format string) (*pipeline.Result, error) {
		return runner.Execute(ctx, pipeline.Options{
			InputPath: input,
			Layout:    layout.Options{},
			Formats:   []string{format},
			Title:     opts.title,
			NoCache:   opts.noCache,
			Logger:    logger,
		})
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	router.Get("/chart.svg", func(w http.ResponseWriter, r *http.Request) {
		result, err := execute(r.Context(), pipeline.FormatSVG)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
	})

	router.Get("/graph.svg", func(w http.ResponseWriter, r *http.Request) {
		result, err := execute(r.Context(), pipeline.FormatGraphSVG)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(result.Artifacts[pipeline.FormatGraphSVG])
	})

	router.Get("/layout.json", func(w http.ResponseWriter, r *http.Request) {
		result, err := execute(r.Context(), pipeline.FormatJSON)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
	})

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, previewPage, input)
	})

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	printInfo("Serving %s", input)
	printNextStep("Open", fmt.Sprintf("http://%s/", opts.addr))

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// requestLogger logs one debug line per request.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}

// previewPage is the HTML shell around the rendered chart. The %s verb
// receives the dataset path for the page heading.
const previewPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>pedikit preview</title>
<style>
  body { font-family: sans-serif; margin: 2rem; color: #222; }
  header { display: flex; align-items: baseline; gap: 1rem; }
  header code { color: #555; }
  img { max-width: 100%%; border: 1px solid #ddd; margin-top: 1rem; }
</style>
</head>
<body>
<header>
  <h1>pedikit</h1>
  <code>%s</code>
  <nav><a href="/graph.svg">graph</a> <a href="/layout.json">layout</a></nav>
</header>
<img src="/chart.svg" alt="pedigree chart">
<script>
  setInterval(function () {
    var img = document.querySelector("img");
    img.src = "/chart.svg?t=" + Date.now();
  }, 2000);
</script>
</body>
</html>
`
