package canonical

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prodkb/prodkb/internal/tables"
	"github.com/prodkb/prodkb/internal/taxonomy"
)

func sampleProduct() Product {
	return BuildProduct("platinum_card", "Platinum Card", taxonomy.LineCreditCard, []Document{
		{
			FileName:   "platinum.pdf",
			SourceType: "pdf",
			ParsedAt:   "2026-08-01T10:00:00Z",
			Pages:      3,
			Sections: []Section{
				{
					SectionID: "sec-1",
					Title:     "FEATURES",
					Type:      "features",
					Text:      "Get 5% cashback.",
					Status:    StatusPresent,
					Tables: []Table{
						{
							TableID: "tab-1",
							Rows:    []tables.Row{{"Fee": "Annual", "Amount": "500"}},
						},
					},
				},
				{
					SectionID: "sec-2",
					Title:     "rewards",
					Type:      "rewards",
					Status:    StatusMissing,
				},
			},
		},
	})
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := sampleProduct()

	path, err := WriteFile(dir, p)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if filepath.Base(path) != "platinum_card.json" {
		t.Errorf("expected file named by product id, got %q", filepath.Base(path))
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.ProductID != p.ProductID || got.ProductName != p.ProductName || got.ProductLine != p.ProductLine {
		t.Errorf("product header changed across round trip: %+v", got)
	}
	if len(got.Documents) != 1 || len(got.Documents[0].Sections) != 2 {
		t.Fatalf("document shape changed across round trip: %+v", got.Documents)
	}
	rows := got.Documents[0].Sections[0].Tables[0].Rows
	if rows[0]["Amount"] != "500" {
		t.Errorf("unexpected table rows after round trip: %v", rows)
	}
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, err := WriteFile(dir, sampleProduct()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "platinum_card.json")); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestWriteFile_SnakeCaseKeys(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, sampleProduct())
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	for _, key := range []string{`"product_id"`, `"product_line"`, `"file_name"`, `"source_type"`, `"parsed_at"`, `"section_id"`, `"table_id"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected key %s in output JSON", key)
		}
	}
}

func TestReadFile_RejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Product)
		wantErr string
	}{
		{"valid", func(p *Product) {}, ""},
		{"missing product id", func(p *Product) { p.ProductID = "" }, "product_id"},
		{"missing product name", func(p *Product) { p.ProductName = "" }, "product_name"},
		{"no documents", func(p *Product) { p.Documents = nil }, "no documents"},
		{"missing file name", func(p *Product) { p.Documents[0].FileName = "" }, "file_name"},
		{"missing section id", func(p *Product) { p.Documents[0].Sections[0].SectionID = "" }, "section_id"},
		{"missing table id", func(p *Product) { p.Documents[0].Sections[0].Tables[0].TableID = "" }, "table_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := sampleProduct()
			tc.mutate(&p)
			err := p.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}
