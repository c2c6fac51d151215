package bootstrap

import (
	"context"
	"log/slog"

	"github.com/emberfall-games/guildhall/internal/database"
	"github.com/emberfall-games/guildhall/internal/server"
	"github.com/emberfall-games/guildhall/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server        *server.Server
	RestockWorker *worker.RestockWorker
	DBPool        database.Pool
}

// GracefulShutdown stops the HTTP server first so no new requests arrive,
// then the background workers, then closes the database pool. Errors are
// logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.RestockWorker != nil {
		if err := components.RestockWorker.Shutdown(ctx); err != nil {
			slog.Error("Restock worker shutdown failed", "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgShutdownComplete)
}
