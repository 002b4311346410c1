package canonical

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile persists a canonical product as <product_id>.json under dir,
// creating the directory if needed. Returns the written path.
func WriteFile(dir string, p Product) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal product %s: %w", p.ProductID, err)
	}
	path := filepath.Join(dir, p.ProductID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ReadFile loads and validates one canonical JSON file.
func ReadFile(path string) (*Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

// Validate checks the required keys the ingestion engine depends on.
// Structural completeness only; it does not judge section content.
func (p *Product) Validate() error {
	if p.ProductID == "" {
		return fmt.Errorf("missing product_id")
	}
	if p.ProductName == "" {
		return fmt.Errorf("missing product_name")
	}
	if len(p.Documents) == 0 {
		return fmt.Errorf("product %s has no documents", p.ProductID)
	}
	for i, d := range p.Documents {
		if d.FileName == "" {
			return fmt.Errorf("document %d: missing file_name", i)
		}
		for j, s := range d.Sections {
			if s.SectionID == "" {
				return fmt.Errorf("document %s section %d: missing section_id", d.FileName, j)
			}
			for k, t := range s.Tables {
				if t.TableID == "" {
					return fmt.Errorf("section %s table %d: missing table_id", s.SectionID, k)
				}
			}
		}
	}
	return nil
}
