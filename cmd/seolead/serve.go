package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ceddto100/SEO-LEAD/internal/app"
	"github.com/ceddto100/SEO-LEAD/internal/logging"
	"github.com/ceddto100/SEO-LEAD/internal/metrics"
	"github.com/ceddto100/SEO-LEAD/internal/server"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP workflow dispatcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(flags, cmd)
			if port != "" {
				cfg.Server.Port = port
			}
			logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
			metrics.Init()

			application, err := app.New(cfg, logger, app.Options{})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    ":" + cfg.Server.Port,
				Handler: server.New(application, logger.With("component", "http"), cfg.DryRun).Router(),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("http server listening", "addr", srv.Addr, "dry_run", cfg.DryRun)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default from config)")

	return cmd
}
