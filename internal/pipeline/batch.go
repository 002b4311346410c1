package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/prodkb/prodkb/internal/canonical"
	"github.com/prodkb/prodkb/internal/source"
)

// FileResult is the outcome of structuring one file from a folder.
type FileResult struct {
	File       string `json:"file"`
	OutputPath string `json:"output_path,omitempty"`
	Err        string `json:"error,omitempty"`
}

// BatchReport summarizes a folder structuring run.
type BatchReport struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Files     []FileResult `json:"files"`
}

// StructureFolder structures every supported source file in a folder and
// writes one canonical JSON file per product into outDir. An unreadable
// source is reported and skipped; the batch never halts on one file.
func StructureFolder(dir, outDir, explicitLine, defaultLine string, log *slog.Logger) (*BatchReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && source.IsSupportedExtension(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	report := &BatchReport{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		outputPath, err := structureFile(path, name, outDir, explicitLine, defaultLine, log)
		if err != nil {
			log.Error("structuring failed, skipping file", "file", name, "error", err)
			report.Failed++
			report.Files = append(report.Files, FileResult{File: name, Err: err.Error()})
			continue
		}
		log.Info("structured", "file", name, "output", outputPath)
		report.Succeeded++
		report.Files = append(report.Files, FileResult{File: name, OutputPath: outputPath})
	}
	return report, nil
}

func structureFile(path, name, outDir, explicitLine, defaultLine string, log *slog.Logger) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	line, err := LineForFile(name, explicitLine, defaultLine)
	if err != nil {
		return "", err
	}
	product, err := Structure(data, name, "", line, log)
	if err != nil {
		return "", err
	}
	return canonical.WriteFile(outDir, *product)
}
