package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spmaudit/pkg/audit"
	"github.com/matzehuels/spmaudit/pkg/report"
	"github.com/matzehuels/spmaudit/pkg/scan"
)

func newServeCmd() *cobra.Command {
	var (
		addr string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve audit reports over HTTP",
		Long: `Serve starts an HTTP server that audits the project on demand.
GET /report runs a fresh audit and returns the JSON report; responses from
upstream stay cached between requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), addr, root)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "project root to audit")
	return cmd
}

func runServe(ctx context.Context, addr, root string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	backing, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer backing.Close()

	srv := &reportServer{
		runner: func(ctx context.Context, transitive bool) (*report.Report, error) {
			scanner := scan.New(scan.Options{IncludeTransitive: transitive, Logf: logger.Debugf})
			records := scanner.Scan(root)

			auditor := audit.New(newGitHubClient(cfg, backing), audit.Options{
				CheckoutsDir: filepath.Join(root, ".build", "checkouts"),
				Logf:         logger.Debugf,
			})
			groups := audit.Aggregate(auditor.Run(ctx, records))
			return report.FromResults(root, groups), nil
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", srv.handleHealth)
	r.Get("/report", srv.handleReport)
	r.Get("/graph", srv.handleGraph)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	printInfo("Serving audit reports on %s", addr)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

type reportServer struct {
	runner func(ctx context.Context, transitive bool) (*report.Report, error)
}

func (s *reportServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *reportServer) handleReport(w http.ResponseWriter, r *http.Request) {
	transitive := r.URL.Query().Get("transitive") == "true"

	rep, err := s.runner(r.Context(), transitive)
	if err != nil {
		http.Error(w, "audit failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rep); err != nil {
		http.Error(w, "encode report", http.StatusInternalServerError)
	}
}

func (s *reportServer) handleGraph(w http.ResponseWriter, r *http.Request) {
	rep, err := s.runner(r.Context(), false)
	if err != nil {
		http.Error(w, "audit failed", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "svg" {
		svg, err := report.RenderSVG(r.Context(), rep.ToDOT())
		if err != nil {
			http.Error(w, "render graph", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(rep.ToDOT()))
}
