// Package main implements the clipd server: the remote store behind the
// shared-clipboard editor.
//
// A clipboard is a text document addressed by an opaque identifier.
// Anyone holding the identifier (via the share URL) can read and
// overwrite it. The server exposes:
//
//	HTTP API:
//	  POST   /api/clips       - Create a clipboard
//	  GET    /api/clips       - List clipboard summaries
//	  GET    /api/clips/{id}  - Read a clipboard
//	  PUT    /api/clips/{id}  - Replace a clipboard's content
//	  DELETE /api/clips/{id}  - Delete a clipboard
//	  GET    /health          - Health check
//	  GET    /stats           - Storage statistics
//	UI:
//	  GET    /                - Embedded single-page editor
//	  GET    /c/{id}          - Editor bound to an existing clipboard
//
// Configuration (environment, optionally seeded from a YAML file named
// by CLIPD_CONFIG):
//   - CLIPD_LISTEN: Listen address (default ":8080")
//   - CLIPD_DB: SQLite database path (default: in-memory store)
//   - CLIPD_LOG_LEVEL: debug, info, warn, error (default "info")
//
// Example usage:
//
//	# Durable server on the default port
//	CLIPD_DB=/var/lib/clipd/clips.db ./clipd
//
//	# Create and read a clipboard
//	curl -X POST localhost:8080/api/clips -d '{"content":"hello"}'
//	curl localhost:8080/api/clips/{id}
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dreamware/clipd/internal/config"
	"github.com/dreamware/clipd/internal/storage"
)

// logFatal is a variable to allow mocking in tests.
var logFatal = func(logger *zap.Logger, msg string, fields ...zap.Field) {
	logger.Fatal(msg, fields...)
}

func main() {
	cfg, err := config.Resolve()
	if err != nil {
		// No logger yet; fall back to stderr
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("logger error: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	store, err := openStore(cfg, logger)
	if err != nil {
		logFatal(logger, "failed to open store", zap.Error(err))
		return
	}
	defer func() { _ = store.Close() }()

	srv := newServer(store, logger)

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second, // Prevent slowloris attacks
	}

	go func() {
		logger.Info("clipd listening", zap.String("addr", cfg.Listen))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logFatal(logger, "listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
	logger.Info("clipd stopped")
}

// newLogger builds the server logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}

// openStore selects the storage backend: SQLite when a database path is
// configured, otherwise in-memory.
func openStore(cfg config.Config, logger *zap.Logger) (storage.Store, error) {
	if cfg.DBPath == "" {
		logger.Warn("no CLIPD_DB configured; clipboards will not survive restarts")
		return storage.NewMemoryStore(), nil
	}
	return storage.OpenSQLiteStore(cfg.DBPath, logger)
}
