// Command prodkb is the batch entry point: structure source documents into
// canonical JSON, ingest canonical JSON into the graph, declare schema
// constraints, and run post-ingestion sanity checks.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prodkb/prodkb/internal/canonical"
	"github.com/prodkb/prodkb/internal/config"
	"github.com/prodkb/prodkb/internal/graph"
	"github.com/prodkb/prodkb/internal/pipeline"
	"github.com/prodkb/prodkb/internal/taxonomy"
)

func main() {
	var (
		structurePath = flag.String("structure", "", "source file or folder to structure into canonical JSON")
		ingestPath    = flag.String("ingest", "", "canonical JSON file or folder to ingest into the graph")
		constraints   = flag.Bool("constraints", false, "declare uniqueness constraints and seed topic nodes")
		verifyLine    = flag.String("verify", "", "run graph sanity checks for a product line (account|creditcard)")
		productName   = flag.String("product-name", "", "product name override (defaults to file name)")
		productLine   = flag.String("product-line", "", "product line override (account|creditcard)")
		outDir        = flag.String("out", "", "output folder for canonical JSON (defaults to PARSED_DIR)")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := config.Load()
	if *outDir == "" {
		*outDir = cfg.ParsedDir
	}
	ctx := context.Background()

	ran := false
	if *structurePath != "" {
		ran = true
		if err := runStructure(*structurePath, *outDir, *productName, *productLine, cfg, log); err != nil {
			fatal(log, err)
		}
	}
	if *constraints || *ingestPath != "" || *verifyLine != "" {
		ran = true
		store := mustConnect(ctx, cfg, log)
		defer store.Close(ctx)

		if *constraints {
			if err := runConstraints(ctx, store); err != nil {
				fatal(log, err)
			}
			log.Info("constraints declared and topics seeded")
		}
		if *ingestPath != "" {
			if err := runIngest(ctx, store, *ingestPath, log); err != nil {
				fatal(log, err)
			}
		}
		if *verifyLine != "" {
			if err := runVerify(ctx, store, *verifyLine); err != nil {
				fatal(log, err)
			}
		}
	}
	if !ran {
		flag.Usage()
		os.Exit(2)
	}
}

func runStructure(path, outDir, productName, productLine string, cfg config.Config, log *slog.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		report, err := pipeline.StructureFolder(path, outDir, productLine, cfg.DefaultProductLine, log)
		if err != nil {
			return err
		}
		return printJSON(report)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	line, err := pipeline.LineForFile(info.Name(), productLine, cfg.DefaultProductLine)
	if err != nil {
		return err
	}
	product, err := pipeline.Structure(data, info.Name(), productName, line, log)
	if err != nil {
		return err
	}
	outPath, err := canonical.WriteFile(outDir, *product)
	if err != nil {
		return err
	}
	log.Info("structured", "file", info.Name(), "output", outPath)
	return nil
}

func runConstraints(ctx context.Context, store *graph.Client) error {
	if err := graph.EnsureConstraints(ctx, store); err != nil {
		return err
	}
	for _, line := range []taxonomy.ProductLine{taxonomy.LineAccount, taxonomy.LineCreditCard} {
		cfg, err := taxonomy.ForLine(line)
		if err != nil {
			return err
		}
		if err := graph.SeedTopics(ctx, store, cfg); err != nil {
			return err
		}
	}
	return nil
}

func runIngest(ctx context.Context, store *graph.Client, path string, log *slog.Logger) error {
	ing := graph.NewIngestor(store, log)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		report, err := ing.IngestFolder(ctx, path)
		if err != nil {
			return err
		}
		return printJSON(report)
	}
	if err := ing.IngestFile(ctx, path); err != nil {
		return err
	}
	log.Info("ingested", "file", path)
	return nil
}

func runVerify(ctx context.Context, store *graph.Client, lineArg string) error {
	line, err := taxonomy.ParseLine(lineArg)
	if err != nil {
		return err
	}
	report, err := graph.Verify(ctx, store, line)
	if err != nil {
		return err
	}
	if err := printJSON(report); err != nil {
		return err
	}
	if !report.OK() {
		return fmt.Errorf("graph sanity checks failed")
	}
	return nil
}

func mustConnect(ctx context.Context, cfg config.Config, log *slog.Logger) *graph.Client {
	if !cfg.IngestionEnabled() {
		fatal(log, fmt.Errorf("NEO4J_URI is not set"))
	}
	store, err := graph.NewClient(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase, cfg.Neo4jTimeout, log)
	if err != nil {
		fatal(log, err)
	}
	return store
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fatal(log *slog.Logger, err error) {
	log.Error(err.Error())
	os.Exit(1)
}
