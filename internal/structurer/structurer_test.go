package structurer

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prodkb/prodkb/internal/canonical"
	"github.com/prodkb/prodkb/internal/source"
	"github.com/prodkb/prodkb/internal/tables"
	"github.com/prodkb/prodkb/internal/taxonomy"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStructurer(t *testing.T, line taxonomy.ProductLine) *Structurer {
	t.Helper()
	cfg, err := taxonomy.ForLine(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return New(cfg, discardLogger())
}

func sectionByType(t *testing.T, doc canonical.Document, sectionType string) canonical.Section {
	t.Helper()
	for _, sec := range doc.Sections {
		if sec.Type == sectionType {
			return sec
		}
	}
	t.Fatalf("no section of type %q in document", sectionType)
	return canonical.Section{}
}

func TestStructure_CreditCardDocument(t *testing.T) {
	s := newStructurer(t, taxonomy.LineCreditCard)
	src := &source.Document{
		Lines: []string{
			"FEATURES",
			"Get 5% cashback.",
			"Fees:",
			"Annual fee is 500.",
		},
		SourceType: "txt",
	}

	doc := s.Structure(src, "platinum_card", "platinum.txt")

	if doc.FileName != "platinum.txt" {
		t.Errorf("expected file name %q, got %q", "platinum.txt", doc.FileName)
	}
	if doc.ParsedAt == "" {
		t.Error("expected parsed_at to be set")
	}

	features := sectionByType(t, doc, "features")
	if features.Status != canonical.StatusPresent {
		t.Errorf("expected features present, got %q", features.Status)
	}
	if features.Title != "FEATURES" {
		t.Errorf("expected raw heading as title, got %q", features.Title)
	}
	if features.Text != "Get 5% cashback." {
		t.Errorf("unexpected features text: %q", features.Text)
	}

	fees := sectionByType(t, doc, "fees")
	if fees.Status != canonical.StatusPresent {
		t.Errorf("expected fees present, got %q", fees.Status)
	}
	if fees.Text != "Annual fee is 500." {
		t.Errorf("unexpected fees text: %q", fees.Text)
	}

	// Every canonical topic appears exactly once; absent ones are backfilled.
	if len(doc.Sections) != 9 {
		t.Fatalf("expected 9 sections, got %d", len(doc.Sections))
	}
	for _, topic := range []string{"rewards", "billing", "emi_flexipay", "balance_transfer", "insurance", "terms_and_conditions", "disputes"} {
		sec := sectionByType(t, doc, topic)
		if sec.Status != canonical.StatusMissing {
			t.Errorf("expected %q to be backfilled missing, got %q", topic, sec.Status)
		}
		if sec.Text != "" {
			t.Errorf("expected empty text for missing %q, got %q", topic, sec.Text)
		}
	}
}

func TestStructure_LinesBeforeFirstHeadingDiscarded(t *testing.T) {
	s := newStructurer(t, taxonomy.LineAccount)
	src := &source.Document{
		Lines: []string{
			"preamble text without a home",
			"ELIGIBILITY",
			"open to resident individuals only.",
		},
		SourceType: "txt",
	}

	doc := s.Structure(src, "basic_savings", "basic.txt")
	sec := sectionByType(t, doc, "Eligibility")
	if sec.Text != "open to resident individuals only." {
		t.Errorf("unexpected eligibility text: %q", sec.Text)
	}
	for _, got := range doc.Sections {
		if got.Text == "preamble text without a home" {
			t.Errorf("preamble leaked into section %q", got.Type)
		}
	}
}

func TestStructure_MultiLineBodyJoinedWithNewline(t *testing.T) {
	s := newStructurer(t, taxonomy.LineCreditCard)
	src := &source.Document{
		Lines: []string{
			"FEATURES",
			"first benefit of the card.",
			"",
			"second benefit of the card.",
		},
		SourceType: "txt",
	}

	doc := s.Structure(src, "platinum_card", "platinum.txt")
	sec := sectionByType(t, doc, "features")
	if sec.Text != "first benefit of the card.\nsecond benefit of the card." {
		t.Errorf("unexpected body text: %q", sec.Text)
	}
}

func TestAttachTables_PrefersFeesSection(t *testing.T) {
	s := newStructurer(t, taxonomy.LineAccount)
	src := &source.Document{
		Lines: []string{
			"ABOUT THIS PRODUCT",
			"a zero balance savings account for students.",
			"SERVICE CHARGES",
			"all applicable amounts appear in the table.",
		},
		Tables: tables.Result{
			Regions: []tables.Region{
				{
					{"Service", "Charge"},
					{"SMS alerts", "15"},
				},
			},
		},
		SourceType: "docx",
	}

	doc := s.Structure(src, "basic_savings", "basic.docx")

	overview := sectionByType(t, doc, "Product Overview")
	if len(overview.Tables) != 0 {
		t.Errorf("expected no tables on overview, got %d", len(overview.Tables))
	}
	fees := sectionByType(t, doc, "Fees & Charges")
	if len(fees.Tables) != 1 {
		t.Fatalf("expected 1 table on fees, got %d", len(fees.Tables))
	}
	rows := fees.Tables[0].Rows
	if len(rows) != 1 || rows[0]["Service"] != "SMS alerts" || rows[0]["Charge"] != "15" {
		t.Errorf("unexpected table rows: %v", rows)
	}
}

func TestAttachTables_FallsBackToFirstSection(t *testing.T) {
	s := newStructurer(t, taxonomy.LineAccount)
	src := &source.Document{
		Lines: []string{
			"ABOUT THIS PRODUCT",
			"a zero balance savings account for students.",
		},
		Tables: tables.Result{
			Regions: []tables.Region{
				{
					{"A", "B"},
					{"1", "2"},
				},
			},
		},
		SourceType: "docx",
	}

	doc := s.Structure(src, "basic_savings", "basic.docx")
	overview := sectionByType(t, doc, "Product Overview")
	if len(overview.Tables) != 1 {
		t.Errorf("expected table on first section, got %d", len(overview.Tables))
	}
}

func TestStructure_NoSections(t *testing.T) {
	s := newStructurer(t, taxonomy.LineCreditCard)
	src := &source.Document{
		Lines:      []string{"just some body text with no heading at all in it"},
		SourceType: "txt",
	}

	doc := s.Structure(src, "platinum_card", "platinum.txt")
	if len(doc.Sections) != 9 {
		t.Fatalf("expected full backfill of 9 sections, got %d", len(doc.Sections))
	}
	for _, sec := range doc.Sections {
		if sec.Status != canonical.StatusMissing {
			t.Errorf("expected %q missing, got %q", sec.Type, sec.Status)
		}
	}
}

func TestStructure_Deterministic(t *testing.T) {
	src := func() *source.Document {
		return &source.Document{
			Lines: []string{
				"FEATURES",
				"Get 5% cashback.",
				"Fees:",
				"Annual fee is 500.",
			},
			Tables: tables.Result{
				Regions: []tables.Region{
					{
						{"Fee", "Amount"},
						{"Annual", "500"},
					},
				},
			},
			SourceType: "pdf",
		}
	}

	a := newStructurer(t, taxonomy.LineCreditCard).Structure(src(), "platinum_card", "platinum.pdf")
	b := newStructurer(t, taxonomy.LineCreditCard).Structure(src(), "platinum_card", "platinum.pdf")

	if len(a.Sections) != len(b.Sections) {
		t.Fatalf("section count differs: %d vs %d", len(a.Sections), len(b.Sections))
	}
	for i := range a.Sections {
		if a.Sections[i].SectionID != b.Sections[i].SectionID {
			t.Errorf("section %d id differs across runs: %q vs %q", i, a.Sections[i].SectionID, b.Sections[i].SectionID)
		}
		if len(a.Sections[i].Tables) != len(b.Sections[i].Tables) {
			t.Fatalf("section %d table count differs", i)
		}
		for j := range a.Sections[i].Tables {
			if a.Sections[i].Tables[j].TableID != b.Sections[i].Tables[j].TableID {
				t.Errorf("table %d/%d id differs across runs", i, j)
			}
		}
	}
}

func TestProductID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"SBI Platinum Card", "sbi_platinum_card"},
		{"  Basic   Savings!  ", "basic_savings"},
		{"Fixed-Deposit (Senior)", "fixed_deposit_senior"},
		{"ALLCAPS", "allcaps"},
	}
	for _, tc := range cases {
		if got := ProductID(tc.in); got != tc.want {
			t.Errorf("ProductID(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestSectionID_Stable(t *testing.T) {
	a := SectionID("prod_doc.pdf", 0)
	b := SectionID("prod_doc.pdf", 0)
	if a != b {
		t.Errorf("expected stable section id, got %q and %q", a, b)
	}
	if SectionID("prod_doc.pdf", 1) == a {
		t.Error("expected distinct ids for distinct indexes")
	}
	if SectionID("other_doc.pdf", 0) == a {
		t.Error("expected distinct ids for distinct documents")
	}
}
