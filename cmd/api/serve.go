package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-adoption/internal/adapters/storage"
	"pet-adoption/internal/router"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadRuntime()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := storage.Open(ctx, storage.Options{
			Driver:      cfg.Storage.Driver,
			DSN:         cfg.Storage.DSN,
			AutoMigrate: cfg.Storage.AutoMigrate,
		})
		if err != nil {
			log.Error("open storage failed", map[string]any{"driver": cfg.Storage.Driver, "err": err})
			return err
		}
		defer store.Close()

		r := router.NewRouter(router.Options{
			PetRepo:            store.Pets,
			Logger:             log,
			RateLimitRPS:       cfg.HTTP.RateLimitRPS,
			RateLimitBurst:     cfg.HTTP.RateLimitBurst,
			CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		})

		srv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      r,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("starting server", map[string]any{"addr": cfg.Server.Addr, "storage": store.Driver})
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				log.Error("server error", map[string]any{"err": err})
				return err
			}
			return nil
		case <-ctx.Done():
			log.Info("shutting down", map[string]any{"timeout": cfg.Server.ShutdownTimeout.String()})
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", map[string]any{"err": err})
			return err
		}
		log.Info("server stopped", nil)
		return nil
	},
}
