package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/emberfall-games/guildhall/internal/bootstrap"
	"github.com/emberfall-games/guildhall/internal/config"
	"github.com/emberfall-games/guildhall/internal/database"
	"github.com/emberfall-games/guildhall/internal/database/migrations"
	"github.com/emberfall-games/guildhall/internal/server"
	"github.com/emberfall-games/guildhall/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx := context.Background()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns,
		cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}

	if err := migrations.Up(ctx, dbPool); err != nil {
		slog.Error("Migrations failed", "error", err)
		dbPool.Close()
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	services := bootstrap.InitializeServices(cfg, repos)

	srv := server.NewServer(cfg.Port, cfg.TrustedProxies, dbPool, services)

	restock := worker.NewRestockWorker(services.Shop, clockwork.NewRealClock(), worker.DefaultRestockInterval)
	restock.Start()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		dbPool.Close()
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:        srv,
		RestockWorker: restock,
		DBPool:        dbPool,
	})
}
