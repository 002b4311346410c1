package api

import (
	"encoding/json"
	"net/http"

	"github.com/prodkb/prodkb/internal/canonical"
)

// handleIngest ingests one canonical product JSON document from the request
// body into the graph.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	ing := s.orchestrator.Ingestor()
	if ing == nil {
		jsonError(w, "graph store not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	var product canonical.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		jsonError(w, "invalid canonical JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := product.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := ing.IngestProduct(r.Context(), &product); err != nil {
		jsonError(w, "ingestion failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"product_id": product.ProductID,
		"documents":  len(product.Documents),
		"status":     "ingested",
	})
}

// handleIngestFolder ingests every canonical JSON file in a server-side
// folder, reporting per-file success/failure without halting the batch.
func (s *Server) handleIngestFolder(w http.ResponseWriter, r *http.Request) {
	ing := s.orchestrator.Ingestor()
	if ing == nil {
		jsonError(w, "graph store not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	report, err := ing.IngestFolder(r.Context(), req.Path)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
