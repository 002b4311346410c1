package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/prodkb/prodkb/internal/tables"
)

// PDFSource handles PDF files with a text layer. Scanned/raster PDFs yield
// no lines; OCR is out of scope.
type PDFSource struct{}

// Minimum horizontal gap (in points) between words that starts a new cell
// when detecting tabular rows.
const cellGap = 14.0

func (s *PDFSource) Parse(r io.Reader, filename string) (*Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "prodkb-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	out := &Document{SourceType: "pdf", Pages: reader.NumPage()}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A broken page loses its text but not the document.
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out.Lines = append(out.Lines, line)
			}
		}

		regions, err := pageTableRegions(page)
		if err != nil {
			out.Tables.Err = fmt.Errorf("page %d: %w", i, err)
			continue
		}
		out.Tables.Regions = append(out.Tables.Regions, regions...)
	}
	return out, nil
}

// pageTableRegions detects tabular regions on a page: runs of consecutive
// text rows that split into the same number (>= 2) of horizontally separated
// cells. Crude next to a dedicated table engine, but enough for the lattice
// fee schedules these documents carry.
func pageTableRegions(page pdflib.Page) ([]tables.Region, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var grid [][]string
	for _, row := range rows {
		grid = append(grid, splitCells(row.Content))
	}

	var regions []tables.Region
	var current tables.Region
	flush := func() {
		// A single stray multi-cell row is not a table.
		if len(current) >= 2 {
			regions = append(regions, current)
		}
		current = nil
	}
	for _, cells := range grid {
		if len(cells) >= 2 && (len(current) == 0 || len(cells) == len(current[0])) {
			current = append(current, cells)
		} else {
			flush()
		}
	}
	flush()
	return regions, nil
}

// splitCells groups a row's words into cells wherever the horizontal gap to
// the previous word exceeds cellGap.
func splitCells(words []pdflib.Text) []string {
	var cells []string
	var cell strings.Builder
	prevEnd := 0.0
	for i, w := range words {
		if i > 0 && w.X-prevEnd > cellGap {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		}
		cell.WriteString(w.S)
		prevEnd = w.X + w.W
	}
	if cell.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cell.String()))
	}
	return cells
}
