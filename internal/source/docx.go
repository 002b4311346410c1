package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/prodkb/prodkb/internal/tables"
)

// DOCXSource handles .docx files.
type DOCXSource struct{}

func (s *DOCXSource) Parse(r io.Reader, filename string) (*Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "prodkb-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	out := &Document{SourceType: "docx"}
	for _, item := range doc.Document.Body.Items {
		switch node := item.(type) {
		case *docx.Paragraph:
			if text := docxParagraphText(node); text != "" {
				out.Lines = append(out.Lines, text)
			}
		case *docx.Table:
			region, err := docxTableRegion(node)
			if err != nil {
				// Table failures are isolated; keep parsing the rest.
				out.Tables.Err = err
				continue
			}
			if len(region) > 0 {
				out.Tables.Regions = append(out.Tables.Regions, region)
			}
		}
	}
	return out, nil
}

// docxTableRegion converts one w:tbl into a raw cell grid. go-docx leaves
// fields nil for malformed markup, so the conversion guards against panics.
func docxTableRegion(tbl *docx.Table) (region tables.Region, err error) {
	defer func() {
		if r := recover(); r != nil {
			region = nil
			err = fmt.Errorf("read docx table: %v", r)
		}
	}()
	for _, row := range tbl.TableRows {
		if row == nil {
			continue
		}
		var cells []string
		for _, cell := range row.TableCells {
			if cell == nil {
				cells = append(cells, "")
				continue
			}
			var parts []string
			for _, para := range cell.Paragraphs {
				if text := docxParagraphText(para); text != "" {
					parts = append(parts, text)
				}
			}
			cells = append(cells, strings.Join(parts, "\n"))
		}
		if len(cells) > 0 {
			region = append(region, cells)
		}
	}
	return region, nil
}

func docxParagraphText(para *docx.Paragraph) string {
	if para == nil {
		return ""
	}
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
