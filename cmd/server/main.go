package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prodkb/prodkb/internal/api"
	"github.com/prodkb/prodkb/internal/config"
	"github.com/prodkb/prodkb/internal/graph"
	"github.com/prodkb/prodkb/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graph store is optional; without it the service structures documents
	// but cannot ingest.
	var store *graph.Client
	var ingestor *graph.Ingestor
	if cfg.IngestionEnabled() {
		var err error
		store, err = graph.NewClient(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase, cfg.Neo4jTimeout, log)
		if err != nil {
			log.Error("neo4j connection failed", "error", err)
			os.Exit(1)
		}
		ingestor = graph.NewIngestor(store, log)
	} else {
		log.Warn("NEO4J_URI not set, graph ingestion disabled")
	}

	orch := pipeline.NewOrchestrator(cfg, ingestor, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, store, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if store != nil {
			store.Close(shutdownCtx)
		}
	}()

	log.Info("starting prodkb", "port", cfg.Port, "ingestion", cfg.IngestionEnabled())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
