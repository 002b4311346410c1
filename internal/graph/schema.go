package graph

import (
	"context"
	"fmt"

	"github.com/prodkb/prodkb/internal/taxonomy"
)

// Uniqueness constraints the ingestion engine's MERGE semantics rely on.
// Declared out-of-band, before any ingestion runs.
var constraintStatements = []string{
	`CREATE CONSTRAINT product_unique IF NOT EXISTS
	 FOR (p:Product) REQUIRE p.product_id IS UNIQUE`,
	`CREATE CONSTRAINT document_unique IF NOT EXISTS
	 FOR (d:Document) REQUIRE d.document_id IS UNIQUE`,
	`CREATE CONSTRAINT section_unique IF NOT EXISTS
	 FOR (s:Section) REQUIRE s.section_id IS UNIQUE`,
	`CREATE CONSTRAINT table_unique IF NOT EXISTS
	 FOR (t:Table) REQUIRE t.table_id IS UNIQUE`,
	`CREATE CONSTRAINT topic_unique IF NOT EXISTS
	 FOR (t:Topic) REQUIRE t.name IS UNIQUE`,
	`CREATE FULLTEXT INDEX sectionTextIndex IF NOT EXISTS
	 FOR (s:Section) ON EACH [s.text]`,
}

// EnsureConstraints declares every uniqueness constraint and index the graph
// schema needs. Safe to re-run.
func EnsureConstraints(ctx context.Context, run Runner) error {
	for _, stmt := range constraintStatements {
		if err := run.Write(ctx, stmt, nil); err != nil {
			return fmt.Errorf("declare constraint: %w", err)
		}
	}
	return nil
}

// SeedTopics upserts one Topic lookup node per canonical topic of a product
// line. Topics are a lookup dimension, not structural parents.
func SeedTopics(ctx context.Context, run Runner, cfg taxonomy.Config) error {
	for _, topic := range cfg.Topics {
		err := run.Write(ctx, `
MERGE (t:Topic {name: $name})
SET t.product_line = $line
`, map[string]any{"name": topic, "line": string(cfg.Line)})
		if err != nil {
			return fmt.Errorf("seed topic %s: %w", topic, err)
		}
	}
	return nil
}
