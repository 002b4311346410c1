package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prodkb/prodkb/internal/graph"
	"github.com/prodkb/prodkb/internal/taxonomy"
)

// handleListProducts lists products in the graph, optionally filtered by
// product line.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		jsonError(w, "graph store not configured", http.StatusServiceUnavailable)
		return
	}

	cypher := `
MATCH (p:Product)
OPTIONAL MATCH (p)-[:HAS_DOCUMENT]->(d:Document)
RETURN p.product_id AS product_id, p.product_name AS product_name,
       p.product_line AS product_line, COUNT(d) AS documents
ORDER BY p.product_id
`
	params := map[string]any{}
	if line := r.URL.Query().Get("product_line"); line != "" {
		cypher = `
MATCH (p:Product)
WHERE p.product_line = $line
OPTIONAL MATCH (p)-[:HAS_DOCUMENT]->(d:Document)
RETURN p.product_id AS product_id, p.product_name AS product_name,
       p.product_line AS product_line, COUNT(d) AS documents
ORDER BY p.product_id
`
		params["line"] = line
	}

	rows, err := s.store.Read(r.Context(), cypher, params)
	if err != nil {
		jsonError(w, "failed to list products: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"products": rows})
}

// handleDeleteProduct removes a product and its whole containment tree.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		jsonError(w, "graph store not configured", http.StatusServiceUnavailable)
		return
	}

	productID := chi.URLParam(r, "productID")
	err := s.store.Write(r.Context(), `
MATCH (p:Product {product_id: $pid})
OPTIONAL MATCH (p)-[:HAS_DOCUMENT]->(d:Document)
OPTIONAL MATCH (d)-[:HAS_SECTION]->(s:Section)
OPTIONAL MATCH (s)-[:HAS_TABLE]->(t:Table)
DETACH DELETE p, d, s, t
`, map[string]any{"pid": productID})
	if err != nil {
		jsonError(w, "failed to delete product: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"product_id": productID, "status": "deleted"})
}

// handleValidate runs the post-ingestion sanity checks for one product line.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		jsonError(w, "graph store not configured", http.StatusServiceUnavailable)
		return
	}

	line, err := taxonomy.ParseLine(r.URL.Query().Get("product_line"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := graph.Verify(r.Context(), s.store, line)
	if err != nil {
		jsonError(w, "validation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": report.OK(), "report": report})
}
