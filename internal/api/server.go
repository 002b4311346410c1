package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/prodkb/prodkb/internal/config"
	"github.com/prodkb/prodkb/internal/graph"
	"github.com/prodkb/prodkb/internal/pipeline"
)

// Server is the HTTP API server for prodkb.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	store        *graph.Client // nil when ingestion is disabled
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, store *graph.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		store:        store,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/structure", s.handleStructure)
		r.Get("/api/structure/{jobID}/status", s.handleStructureStatus)
		r.Post("/api/structure/batch", s.handleBatchStructure)

		r.Post("/api/ingest", s.handleIngest)
		r.Post("/api/ingest/folder", s.handleIngestFolder)

		r.Get("/api/products", s.handleListProducts)
		r.Delete("/api/products/{productID}", s.handleDeleteProduct)
		r.Get("/api/validate", s.handleValidate)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
