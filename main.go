package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/social-posts/cliparse"
	"github.com/danielhkuo/social-posts/db"
	"github.com/danielhkuo/social-posts/middleware"
	"github.com/danielhkuo/social-posts/router"
)

func main() {
	var err error

	// Load .env if present
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the store
	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := db.Open(startCtx, cfg)
	if err != nil {
		cancel()
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slog.Error("closing database failed", "error", err)
		}
	}()

	// Create schema (tables)
	if !cfg.SkipSchema {
		if err := db.CreateSchema(startCtx, client); err != nil {
			cancel()
			slog.Error("schema creation failed", "error", err)
			client.Close()
			os.Exit(1)
		}
		slog.Info("Database schema ready", "table", client.Table())
	}
	cancel()

	metrics := middleware.NewMetrics(client.DB())

	// Create server
	server := http.Server{
		Handler: router.NewRouter(client, cfg, metrics),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	var metricsServer *http.Server
	if cfg.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", metrics.Handler())
		metricsServer = &http.Server{
			Handler: mux,
			Addr:    ":" + strconv.Itoa(cfg.MetricsPort),
		}
		go func() {
			slog.Info("Metrics listening", "port", cfg.MetricsPort)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Metrics server closed", "error", err)
			}
		}()
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if metricsServer != nil {
			if err := metricsServer.Shutdown(ctx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
