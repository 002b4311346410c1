package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prodkb/prodkb/internal/canonical"
	"github.com/prodkb/prodkb/internal/config"
	"github.com/prodkb/prodkb/internal/graph"
)

// Worker processes a single structuring job.
type Worker struct {
	ingestor *graph.Ingestor
	log      *slog.Logger
	cfg      config.Config
}

func NewWorker(ingestor *graph.Ingestor, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{ingestor: ingestor, log: log, cfg: cfg}
}

// Process runs the full pipeline for a job: structure the source document,
// persist the canonical JSON, and (if requested) ingest it into the graph.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "file", job.Filename)

	job.SetStatus(StatusStructuring, "structuring")
	line, err := LineForFile(job.Filename, job.ProductLine, w.cfg.DefaultProductLine)
	if err != nil {
		w.fail(job, "structuring", err, log)
		return
	}

	product, err := Structure(job.FileData(), job.Filename, job.ProductName, line, log)
	if err != nil {
		w.fail(job, "structuring", err, log)
		return
	}

	job.SetStatus(StatusSerializing, "serializing")
	path, err := canonical.WriteFile(w.cfg.ParsedDir, *product)
	if err != nil {
		w.fail(job, "serializing", err, log)
		return
	}

	sections, present, missing, tableCount := sectionStats(product)
	job.SetResult(sections, present, missing, tableCount, path)
	log.Info("structured document",
		"product_id", product.ProductID,
		"sections", sections,
		"present", present,
		"missing", missing,
		"tables", tableCount,
		"output", path,
	)

	if job.Ingest {
		if w.ingestor == nil {
			w.fail(job, "ingesting", fmt.Errorf("graph store not configured"), log)
			return
		}
		job.SetStatus(StatusIngesting, "ingesting")
		if err := w.ingestor.IngestProduct(ctx, product); err != nil {
			w.fail(job, "ingesting", err, log)
			return
		}
		log.Info("ingested product", "product_id", product.ProductID)
	}

	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) fail(job *Job, phase string, err error, log *slog.Logger) {
	log.Error(phase+" failed", "error", err)
	job.AddError(err.Error())
	job.SetStatus(StatusFailed, phase)
}

func sectionStats(p *canonical.Product) (sections, present, missing, tableCount int) {
	for _, doc := range p.Documents {
		for _, sec := range doc.Sections {
			sections++
			if sec.Status == canonical.StatusMissing {
				missing++
			} else {
				present++
			}
			tableCount += len(sec.Tables)
		}
	}
	return sections, present, missing, tableCount
}
