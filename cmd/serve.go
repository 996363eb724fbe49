package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opsvantage/triage-cli/internal/cache"
	"github.com/opsvantage/triage-cli/internal/model"
	"github.com/opsvantage/triage-cli/internal/reconcile"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reconciled table over HTTP",
	Long: `Starts an API server over the configured workbook source. Results are
memoized per (source, region) with the configured TTL; the presentation
layer is expected to consume the JSON as-is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		mux := buildMux(newMemoizer())

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildMux wires the API routes onto a fresh mux.
func buildMux(memo *cache.Memoizer) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/reconcile", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		region, err := resolveRegion(q.Get("region"))
		if err != nil {
			http.Error(w, `{"error":"unknown region"}`, http.StatusBadRequest)
			return
		}

		src, err := resolveSource(r.Context(), "")
		if err != nil {
			http.Error(w, `{"error":"no workbook source configured"}`, http.StatusServiceUnavailable)
			return
		}

		res, err := memo.Reconcile(src, region)
		if err != nil {
			zap.L().Error("serve: reconcile failed",
				zap.String("region", region.String()),
				zap.Error(err),
			)
			http.Error(w, `{"error":"workbook could not be loaded"}`, http.StatusUnprocessableEntity)
			return
		}

		sel := reconcile.Selection{Counties: q["county"], Weeks: q["week"]}
		records := res.Filtered(sel)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			RunID    string               `json:"run_id"`
			Region   model.Region         `json:"region"`
			Summary  reconcile.Summary    `json:"summary"`
			Counties []string             `json:"counties"`
			Weeks    []string             `json:"weeks"`
			Records  []model.MasterRecord `json:"records"`
		}{res.RunID, res.Region, reconcile.Summarize(records), res.Counties, res.Weeks, records})
	})

	mux.HandleFunc("GET /api/cache", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(memo.Stats())
	})

	mux.HandleFunc("DELETE /api/cache", func(w http.ResponseWriter, r *http.Request) {
		src, err := resolveSource(r.Context(), "")
		if err != nil {
			http.Error(w, `{"error":"no workbook source configured"}`, http.StatusServiceUnavailable)
			return
		}
		if err := memo.Invalidate(src); err != nil {
			http.Error(w, `{"error":"source unreadable"}`, http.StatusUnprocessableEntity)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}
