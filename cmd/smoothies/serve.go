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
	"go.uber.org/zap"

	"smoothies/internal/handler"
	"smoothies/internal/service"
	"smoothies/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the smoothie order form and JSON API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	sessions := service.NewSessionStore(cfg.SessionTTL)
	sweeper := worker.NewSessionSweeper(sessions, cfg.SessionTTL/2, logger)

	r := handler.NewRouter(handler.Dependencies{
		DB:            a.db,
		Catalogs:      a.catalogs,
		Enricher:      a.enricher,
		Orders:        a.orders,
		Sessions:      sessions,
		SessionSecret: cfg.SessionSecret,
		Logger:        logger,
	})

	// page renders wait on up to five sequential lookups
	writeTimeout := 5*cfg.LookupTimeout + 10*time.Second

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("starting server",
		zap.String("addr", cfg.RunAddress),
		zap.String("name_policy", string(cfg.Policy())))

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-quit:
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return err
	}
	logger.Info("shutting down...")

	cancel() // stop sweeper
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
	return nil
}
