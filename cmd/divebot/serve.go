package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/divebot/internal/database"
	"github.com/ngmaloney/divebot/internal/guides"
	"github.com/ngmaloney/divebot/internal/httpapi"
	"github.com/ngmaloney/divebot/internal/observability"
	"github.com/ngmaloney/divebot/internal/relay"
	"github.com/ngmaloney/divebot/internal/stations"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var origins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := a.logger
			metrics := observability.NewMetrics()

			store, err := a.loadStore(metrics)
			if err != nil {
				return err
			}

			db, err := database.Open(a.cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			guideSvc := guides.NewService(
				guides.NewRepository(db),
				relay.New(a.cfg.WebhookURL, os.Stdout),
				nil,
				logger,
				metrics,
			)

			router := httpapi.SetupRouter(httpapi.Options{
				Reports:        a.diveService(store, logger, metrics),
				Guides:         guideSvc,
				Catalog:        store,
				Logger:         logger,
				AllowedOrigins: origins,
			})

			srv := &http.Server{
				Addr:              a.cfg.HTTPAddr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if a.cfg.RefreshInterval > 0 {
				go refreshLoop(ctx, a, store)
			}

			// Start HTTP server.
			go func() {
				logger.Info("http server listening", "addr", a.cfg.HTTPAddr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server error", "error", err)
					stop()
				}
			}()

			<-ctx.Done()
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}

			logger.Info("shutdown complete")
			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides http.addr)")
	cmd.Flags().String("webhook-url", "", "chat webhook URL (overrides relay.webhook_url)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin (repeatable; default allows all)")
	return cmd
}

// refreshLoop re-downloads the snapshots on an interval and swaps in the new
// catalog. A failed refresh keeps serving the current catalog.
func refreshLoop(ctx context.Context, a *app, store *stations.Store) {
	refresher := stations.NewRefresher(a.cfg.MDAPIURL, a.logger)
	ticker := time.NewTicker(a.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := refresher.Refresh(ctx, a.cfg.StationsDir); err != nil {
				a.logger.Warn("station refresh failed", "error", err)
				continue
			}
			// Reload logs and records its own outcome
			_, _ = store.Reload()
		}
	}
}
