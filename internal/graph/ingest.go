package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/prodkb/prodkb/internal/canonical"
	"github.com/prodkb/prodkb/internal/structurer"
	"github.com/prodkb/prodkb/internal/taxonomy"
)

// Runner executes one Cypher write. Satisfied by *Client; tests substitute a
// recording fake.
type Runner interface {
	Write(ctx context.Context, cypher string, params map[string]any) error
}

// Ingestor performs schema-aware, idempotent upserts of canonical products
// into the property graph. Every entity upsert is a single conditional
// MERGE-then-SET, and every containment edge a conditional MERGE, so
// repeated ingestion of the same identifiers converges to one graph state.
type Ingestor struct {
	run Runner
	log *slog.Logger
}

func NewIngestor(run Runner, log *slog.Logger) *Ingestor {
	return &Ingestor{run: run, log: log}
}

// IngestProduct upserts a product and its whole containment tree, strictly
// top-down. A store failure aborts the remaining steps for this product but
// leaves already-committed entities in place; each upsert is independently
// idempotent, so re-running the whole file is always safe.
func (in *Ingestor) IngestProduct(ctx context.Context, p *canonical.Product) error {
	err := in.run.Write(ctx, `
MERGE (p:Product {product_id: $product_id})
SET p.product_name = $product_name,
    p.product_line = $product_line
`, map[string]any{
		"product_id":   p.ProductID,
		"product_name": p.ProductName,
		"product_line": p.ProductLine,
	})
	if err != nil {
		return fmt.Errorf("upsert product %s: %w", p.ProductID, err)
	}

	// Topic tagging only applies to types the product line's taxonomy knows.
	var cfg taxonomy.Config
	var haveTaxonomy bool
	if line, lineErr := taxonomy.ParseLine(p.ProductLine); lineErr == nil {
		if c, cfgErr := taxonomy.ForLine(line); cfgErr == nil {
			cfg, haveTaxonomy = c, true
		}
	}

	for i := range p.Documents {
		if err := in.ingestDocument(ctx, p.ProductID, &p.Documents[i], cfg, haveTaxonomy); err != nil {
			return err
		}
	}
	return nil
}

func (in *Ingestor) ingestDocument(ctx context.Context, productID string, doc *canonical.Document, cfg taxonomy.Config, haveTaxonomy bool) error {
	docID := structurer.DocumentID(productID, doc.FileName)

	err := in.run.Write(ctx, `
MERGE (d:Document {document_id: $document_id})
SET d.file_name = $file_name,
    d.source_type = $source_type,
    d.parsed_at = $parsed_at
WITH d
MATCH (p:Product {product_id: $product_id})
MERGE (p)-[:HAS_DOCUMENT]->(d)
`, map[string]any{
		"document_id": docID,
		"file_name":   doc.FileName,
		"source_type": doc.SourceType,
		"parsed_at":   doc.ParsedAt,
		"product_id":  productID,
	})
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", docID, err)
	}

	for i := range doc.Sections {
		if err := in.ingestSection(ctx, docID, &doc.Sections[i], cfg, haveTaxonomy); err != nil {
			return err
		}
	}
	return nil
}

func (in *Ingestor) ingestSection(ctx context.Context, docID string, sec *canonical.Section, cfg taxonomy.Config, haveTaxonomy bool) error {
	err := in.run.Write(ctx, `
MERGE (s:Section {section_id: $section_id})
SET s.title = $title,
    s.type = $type,
    s.text = $text,
    s.status = $status
WITH s
MATCH (d:Document {document_id: $document_id})
MERGE (d)-[:HAS_SECTION]->(s)
`, map[string]any{
		"section_id":  sec.SectionID,
		"title":       sec.Title,
		"type":        sec.Type,
		"text":        sec.Text,
		"status":      sec.Status,
		"document_id": docID,
	})
	if err != nil {
		return fmt.Errorf("upsert section %s: %w", sec.SectionID, err)
	}

	if haveTaxonomy && cfg.IsCanonical(sec.Type) {
		err := in.run.Write(ctx, `
MATCH (s:Section {section_id: $section_id})
MERGE (t:Topic {name: $name})
MERGE (s)-[:ABOUT_TOPIC]->(t)
`, map[string]any{"section_id": sec.SectionID, "name": sec.Type})
		if err != nil {
			return fmt.Errorf("tag section %s topic: %w", sec.SectionID, err)
		}
	}

	for i := range sec.Tables {
		if err := in.ingestTable(ctx, sec.SectionID, &sec.Tables[i]); err != nil {
			return err
		}
	}
	return nil
}

func (in *Ingestor) ingestTable(ctx context.Context, sectionID string, tbl *canonical.Table) error {
	rows, err := json.Marshal(tbl.Rows)
	if err != nil {
		return fmt.Errorf("serialize table %s rows: %w", tbl.TableID, err)
	}
	err = in.run.Write(ctx, `
MERGE (t:Table {table_id: $table_id})
SET t.rows = $rows
WITH t
MATCH (s:Section {section_id: $section_id})
MERGE (s)-[:HAS_TABLE]->(t)
`, map[string]any{
		"table_id":   tbl.TableID,
		"rows":       string(rows),
		"section_id": sectionID,
	})
	if err != nil {
		return fmt.Errorf("upsert table %s: %w", tbl.TableID, err)
	}
	return nil
}

// IngestFile loads one canonical JSON file and ingests it.
func (in *Ingestor) IngestFile(ctx context.Context, path string) error {
	p, err := canonical.ReadFile(path)
	if err != nil {
		return err
	}
	return in.IngestProduct(ctx, p)
}

// FileResult is the outcome of ingesting one file from a folder.
type FileResult struct {
	File string `json:"file"`
	Err  string `json:"error,omitempty"`
}

// Report summarizes a folder ingestion.
type Report struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Files     []FileResult `json:"files"`
}

// IngestFolder ingests every .json file in a folder. A failure on one file
// (unreadable, malformed, store error) is recorded and the batch continues.
func (in *Ingestor) IngestFolder(ctx context.Context, dir string) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	report := &Report{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := in.IngestFile(ctx, path); err != nil {
			in.log.Error("ingestion failed, skipping file", "file", name, "error", err)
			report.Failed++
			report.Files = append(report.Files, FileResult{File: name, Err: err.Error()})
			continue
		}
		in.log.Info("ingested", "file", name)
		report.Succeeded++
		report.Files = append(report.Files, FileResult{File: name})
	}
	return report, nil
}
