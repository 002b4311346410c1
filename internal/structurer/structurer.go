// Package structurer turns a source document's ordered lines and table
// regions into the canonical section sequence: detected sections in reading
// order, tables attached by topic preference, and a backfilled tail covering
// every canonical topic absent from the source.
package structurer

import (
	"log/slog"
	"strings"
	"time"

	"github.com/prodkb/prodkb/internal/canonical"
	"github.com/prodkb/prodkb/internal/source"
	"github.com/prodkb/prodkb/internal/tables"
	"github.com/prodkb/prodkb/internal/taxonomy"
)

// Structurer drives heading classification and table extraction for one
// product line.
type Structurer struct {
	cfg taxonomy.Config
	log *slog.Logger
	now func() time.Time
}

func New(cfg taxonomy.Config, log *slog.Logger) *Structurer {
	return &Structurer{cfg: cfg, log: log, now: time.Now}
}

// Structure produces one canonical document for a source file. documentID
// identity comes from the owning product and file name, so section and table
// ids are stable across re-parsing of the same file.
func (s *Structurer) Structure(src *source.Document, productID, fileName string) canonical.Document {
	docID := DocumentID(productID, fileName)

	sections := s.collectSections(src.Lines, docID)
	s.attachTables(sections, src.Tables, fileName)
	sections = s.backfill(sections, docID)

	return canonical.Document{
		FileName:   fileName,
		SourceType: src.SourceType,
		ParsedAt:   s.now().Format(time.RFC3339),
		Pages:      src.Pages,
		Sections:   sections,
	}
}

// collectSections runs the line state machine: a heading closes the open
// section and starts a new one; body lines accumulate into the open section;
// lines before the first heading have no section and are discarded.
func (s *Structurer) collectSections(lines []string, docID string) []canonical.Section {
	var out []canonical.Section
	var cur *canonical.Section

	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s.cfg.IsHeading(line) {
			flush()
			cur = &canonical.Section{
				SectionID: SectionID(docID, len(out)),
				Title:     line,
				Type:      s.cfg.Classify(line),
				Status:    canonical.StatusPresent,
			}
			continue
		}
		if cur == nil {
			continue
		}
		if cur.Text == "" {
			cur.Text = line
		} else {
			cur.Text += "\n" + line
		}
	}
	flush()
	return out
}

// attachTables extracts each table region and attaches the rows to the first
// section whose type is table-preferred for this taxonomy (Fees/MITC for
// accounts, fees for cards), else the first section. Regions that extract to
// nothing are dropped; an extraction failure is logged and isolated.
func (s *Structurer) attachTables(sections []canonical.Section, res tables.Result, fileName string) {
	if res.Err != nil {
		s.log.Warn("table extraction failed", "file", fileName, "error", res.Err)
	}
	if len(res.Regions) == 0 {
		return
	}
	if len(sections) == 0 {
		s.log.Warn("tables found but no sections to attach to", "file", fileName, "tables", len(res.Regions))
		return
	}

	target := &sections[0]
	for i := range sections {
		if s.cfg.IsTablePreferred(sections[i].Type) {
			target = &sections[i]
			break
		}
	}

	for _, region := range res.Regions {
		rows := tables.Extract(region)
		if len(rows) == 0 {
			continue
		}
		target.Tables = append(target.Tables, canonical.Table{
			TableID: TableID(target.SectionID, len(target.Tables)),
			Rows:    rows,
		})
	}
}

// backfill appends a synthetic section for every canonical topic absent from
// the detected set, in taxonomy order, so each document always covers the
// full taxonomy.
func (s *Structurer) backfill(sections []canonical.Section, docID string) []canonical.Section {
	present := make(map[string]bool, len(sections))
	for _, sec := range sections {
		present[sec.Type] = true
	}
	for _, topic := range s.cfg.Topics {
		if present[topic] {
			continue
		}
		sections = append(sections, canonical.Section{
			SectionID: SectionID(docID, len(sections)),
			Title:     topic,
			Type:      topic,
			Status:    canonical.StatusMissing,
		})
	}
	return sections
}
