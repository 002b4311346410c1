package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/prodkb/prodkb/internal/taxonomy"
)

// Querier executes one Cypher read. Satisfied by *Client.
type Querier interface {
	Read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

// VerifyReport holds the graph sanity counts for one product line.
type VerifyReport struct {
	ProductLine     string           `json:"product_line"`
	Products        int              `json:"products"`
	DocumentLinks   int              `json:"document_links"`
	SectionCounts   map[string]int64 `json:"section_counts"`
	MissingTopics   []string         `json:"missing_topics"`
	Tables          int64            `json:"tables"`
	OrphanProducts  []string         `json:"orphan_products"`
	OrphanDocuments []string         `json:"orphan_documents"`
}

// OK reports whether the graph passes the structural sanity checks:
// every canonical topic present somewhere and no orphan nodes.
func (r *VerifyReport) OK() bool {
	return len(r.MissingTopics) == 0 && len(r.OrphanProducts) == 0 && len(r.OrphanDocuments) == 0
}

// Verify runs the post-ingestion sanity queries for one product line:
// product and link counts, per-document section counts, canonical topic
// coverage, table count and orphan checks.
func Verify(ctx context.Context, q Querier, line taxonomy.ProductLine) (*VerifyReport, error) {
	cfg, err := taxonomy.ForLine(line)
	if err != nil {
		return nil, err
	}
	params := map[string]any{"line": string(line)}
	report := &VerifyReport{ProductLine: string(line), SectionCounts: map[string]int64{}}

	rows, err := q.Read(ctx, `
MATCH (p:Product)
WHERE p.product_line = $line
RETURN p.product_id AS id
`, params)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	report.Products = len(rows)

	rows, err = q.Read(ctx, `
MATCH (p:Product)-[:HAS_DOCUMENT]->(d:Document)
WHERE p.product_line = $line
RETURN p.product_id AS pid, d.file_name AS doc
`, params)
	if err != nil {
		return nil, fmt.Errorf("count product-document links: %w", err)
	}
	report.DocumentLinks = len(rows)

	rows, err = q.Read(ctx, `
MATCH (p:Product)-[:HAS_DOCUMENT]->(d:Document)-[:HAS_SECTION]->(s:Section)
WHERE p.product_line = $line
RETURN d.file_name AS doc, COUNT(s) AS section_count
ORDER BY section_count DESC
`, params)
	if err != nil {
		return nil, fmt.Errorf("count sections: %w", err)
	}
	for _, row := range rows {
		doc, _ := row["doc"].(string)
		count, _ := row["section_count"].(int64)
		report.SectionCounts[doc] = count
	}

	rows, err = q.Read(ctx, `
MATCH (p:Product)-[:HAS_DOCUMENT]->(:Document)-[:HAS_SECTION]->(s:Section)
WHERE p.product_line = $line
RETURN DISTINCT s.type AS type
`, params)
	if err != nil {
		return nil, fmt.Errorf("collect section types: %w", err)
	}
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if t, ok := row["type"].(string); ok {
			seen[strings.ToLower(t)] = true
		}
	}
	for _, topic := range cfg.Topics {
		if !seen[strings.ToLower(topic)] {
			report.MissingTopics = append(report.MissingTopics, topic)
		}
	}

	rows, err = q.Read(ctx, `MATCH (t:Table) RETURN COUNT(t) AS tables`, nil)
	if err != nil {
		return nil, fmt.Errorf("count tables: %w", err)
	}
	if len(rows) > 0 {
		report.Tables, _ = rows[0]["tables"].(int64)
	}

	rows, err = q.Read(ctx, `
MATCH (p:Product)
WHERE p.product_line = $line AND NOT (p)-[:HAS_DOCUMENT]->()
RETURN p.product_id AS id
`, params)
	if err != nil {
		return nil, fmt.Errorf("orphan products: %w", err)
	}
	for _, row := range rows {
		if id, ok := row["id"].(string); ok {
			report.OrphanProducts = append(report.OrphanProducts, id)
		}
	}

	rows, err = q.Read(ctx, `
MATCH (d:Document)
WHERE NOT (d)-[:HAS_SECTION]->()
RETURN d.file_name AS doc
`, nil)
	if err != nil {
		return nil, fmt.Errorf("orphan documents: %w", err)
	}
	for _, row := range rows {
		if doc, ok := row["doc"].(string); ok {
			report.OrphanDocuments = append(report.OrphanDocuments, doc)
		}
	}

	return report, nil
}
