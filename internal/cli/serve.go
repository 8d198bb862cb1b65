package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/conceptflow/conceptflow/pkg/encode"
	"github.com/conceptflow/conceptflow/pkg/layout"
	"github.com/conceptflow/conceptflow/pkg/scene"
	"github.com/conceptflow/conceptflow/pkg/viz"
)

// serveFlags holds the flag values for the serve command.
type serveFlags struct {
	addr      string
	stylePath string
}

// newServeCmd creates the serve command for interactive exploration.
func newServeCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve [graph.json]",
		Short: "Serve the interactive diagram over HTTP",
		Long: `Serve a knowledge graph as an interactive Cytoscape diagram.

The index page embeds the full diagram with hover and highlight behavior.
The JSON endpoints expose the pieces separately:

  /api/elements  Cytoscape node and edge elements with resolved encoding
  /api/style     the generated stylesheet, interaction rules last
  /api/layout    planned per-node positions and row assignments`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", ":8412", "listen address")
	cmd.Flags().StringVar(&flags.stylePath, "style", "", "TOML style table overriding edge colors and opacities")

	return cmd
}

// runServe loads the graph once at startup and serves it until the context
// is cancelled.
func runServe(ctx context.Context, input string, flags serveFlags) error {
	logger := loggerFromContext(ctx)

	scn, enc, styles, err := loadScene(input, flags.stylePath)
	if err != nil {
		return err
	}

	// Plan up front so /api/layout and the index page carry positions.
	planner := layout.Planner{}
	plan := planner.Plan(scn)

	title := filepath.Base(input)
	srv := &http.Server{
		Addr:              flags.addr,
		Handler:           newRouter(scn, enc, styles, plan, title, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printInfo("Serving %s", StyleValue.Render(title))
	printDetail("http://localhost%s", flags.addr)
	printStats(scn.NodeCount(), scn.EdgeCount())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Debug("server stopped", "addr", flags.addr)
	return nil
}

// newRouter builds the chi router over a loaded, planned scene.
func newRouter(scn *scene.Scene, enc encode.Encoder, styles encode.StyleTable, plan layout.Plan, title string, logger *charmlog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		page, err := viz.GenerateHTML(scn, enc, styles, title)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/elements", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, viz.FromScene(scn, enc))
		})
		r.Get("/style", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, viz.Stylesheet(styles))
		})
		r.Get("/layout", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, buildLayout(scn, plan, enc, layout.DefaultLevelHeight, layout.DefaultNodeSpacing))
		})
	})

	return r
}

// requestLogger logs each request at debug level with the structured logger.
func requestLogger(logger *charmlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			logger.Debug("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	if err := e.Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
