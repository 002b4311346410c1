package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prodkb/prodkb/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		ParsedDir:          t.TempDir(),
		DefaultProductLine: "Account",
		WorkerCount:        1,
		MaxQueueSize:       10,
		JobTTL:             time.Hour,
	}
}

func queuedJob(filename string, data []byte) *Job {
	job := &Job{
		ID:        "job-1",
		Filename:  filename,
		Status:    StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData(data)
	return job
}

func TestWorker_ProcessCompletes(t *testing.T) {
	cfg := testConfig(t)
	w := NewWorker(nil, discardLogger(), cfg)

	job := queuedJob("platinum.txt", []byte("FEATURES\nGet 5% cashback.\nFees:\nAnnual fee is 500.\n"))
	job.ProductName = "Platinum Card"
	job.ProductLine = "creditcard"

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Sections != 9 || snap.Progress.Present != 2 || snap.Progress.Missing != 7 {
		t.Errorf("unexpected stats: %+v", snap.Progress)
	}
	if _, err := os.Stat(snap.Progress.OutputPath); err != nil {
		t.Errorf("expected canonical output on disk: %v", err)
	}
	if filepath.Base(snap.Progress.OutputPath) != "platinum_card.json" {
		t.Errorf("unexpected output file: %s", snap.Progress.OutputPath)
	}
}

func TestWorker_FailsOnUnsupportedFile(t *testing.T) {
	w := NewWorker(nil, discardLogger(), testConfig(t))
	job := queuedJob("sheet.xlsx", []byte("data"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", snap.Status)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected a recorded error")
	}
}

func TestWorker_IngestWithoutStoreFails(t *testing.T) {
	w := NewWorker(nil, discardLogger(), testConfig(t))
	job := queuedJob("platinum.txt", []byte("FEATURES\nbody text here.\n"))
	job.ProductLine = "creditcard"
	job.Ingest = true

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed || snap.Phase != "ingesting" {
		t.Fatalf("expected ingesting failure, got %s / %s", snap.Status, snap.Phase)
	}
}

func TestStructureFolder(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "platinum.txt"), []byte("FEATURES\nGet 5% cashback.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "skipped.xlsx"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.docx"), []byte("not a real docx"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := StructureFolder(dir, outDir, "", "Account", discardLogger())
	if err != nil {
		t.Fatalf("StructureFolder: %v", err)
	}
	if report.Succeeded != 1 || report.Failed != 1 {
		t.Errorf("expected 1 success and 1 failure, got %+v", report)
	}
	if len(report.Files) != 2 {
		t.Errorf("expected 2 results (unsupported skipped), got %d", len(report.Files))
	}
	if _, err := os.Stat(filepath.Join(outDir, "platinum.json")); err != nil {
		t.Errorf("expected structured output: %v", err)
	}
}
