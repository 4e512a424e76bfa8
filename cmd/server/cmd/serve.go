package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mailkeeper/internal/app/server/api"
	"mailkeeper/internal/infrastructure/migration"
)

const shutdownTimeout = 10 * time.Second

var noMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API on 0.0.0.0:$PORT.

Database migrations are applied on startup. Use --no-migrate to skip.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !noMigrate {
			log.Info("running database migrations")
			if err := migration.NewMigration(cfg.DB, nil, log).Up(); err != nil {
				return err
			}
		}

		service, err := newService()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           api.New(cfg, service, log),
			ReadHeaderTimeout: 5 * time.Second,
		}
		if cfg.Server.APIKey == "" {
			log.Warn("API_KEY is empty, every request except /health will fail")
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server listening", "addr", srv.Addr, "env", cfg.Env)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&noMigrate, "no-migrate", false, "skip database migrations on startup")
}
