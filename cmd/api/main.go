package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/billingfiles/internal/app"
	"github.com/MrJamesThe3rd/billingfiles/internal/config"
	billingHttp "github.com/MrJamesThe3rd/billingfiles/internal/http"
	fileHandler "github.com/MrJamesThe3rd/billingfiles/internal/http/invoicefile"
	"github.com/MrJamesThe3rd/billingfiles/internal/jobs"
	"github.com/MrJamesThe3rd/billingfiles/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.With("app", cfg.App.Name))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	dispatcher := jobs.NewDispatcher(logging.WithLogger(context.Background(), slog.Default()), cfg.Jobs.QueueSize, a.Handlers())
	defer dispatcher.Close()

	router := billingHttp.New(
		billingHttp.Options{JWTSecret: cfg.Server.JWTSecret, CORSOrigins: cfg.Server.CORSOrigins},
		fileHandler.NewHandler(a.Files, dispatcher),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", server.Addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, waiting for running jobs")
}
