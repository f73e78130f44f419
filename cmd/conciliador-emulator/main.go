// Command conciliador-emulator runs a local emulator of the reconciliation
// service for development and testing.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ofitec/conciliador/internal/emulator"
	"github.com/ofitec/conciliador/pkg/mapping"
)

const (
	defaultPort   = "5555"
	defaultDBPath = "./data/emulator.db"
)

func main() {
	// Setup structured JSON logging.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	// Target-kind mapping: file when configured, built-in defaults otherwise.
	mapper := mapping.Default()
	if path := os.Getenv("CONCILIADOR_MAPPING_PATH"); path != "" {
		m, err := mapping.NewMapper(path)
		if err != nil {
			slog.Error("failed to load mapping", "error", err, "path", path)
			os.Exit(1)
		}
		mapper = m
	}

	st, err := emulator.NewStore(dbPath)
	if err != nil {
		slog.Error("failed to initialize store", "error", err, "db_path", dbPath)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	slog.Info("database initialized", "db_path", dbPath)

	handler := emulator.NewHandler(st, mapper)
	router := emulator.NewRouter(handler)

	addr := fmt.Sprintf(":%s", port)
	slog.Info("starting reconciliation emulator", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		if err := server.Close(); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
