package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Start - starts the REST server with the quantum randomness endpoints.
func Start(logger *slog.Logger, port string, handlers *Handlers) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", handlers.Ping)
	mux.HandleFunc("GET /api/random", handlers.RandomBytes)
	mux.HandleFunc("GET /api/key", handlers.GenerateKey)
	mux.HandleFunc("GET /api/walk", handlers.Walk)
	mux.HandleFunc("GET /api/results", handlers.RecentResults)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	logger.Info("REST server listening", "port", port)

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
