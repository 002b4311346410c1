package tables

import "testing"

func TestExtract_HeadersFromFirstRow(t *testing.T) {
	region := Region{
		{"Service", "Charge"},
		{"ATM withdrawal", "Rs. 20"},
		{"Cheque book", "Rs. 50"},
	}
	rows := Extract(region)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Service"] != "ATM withdrawal" {
		t.Errorf("expected %q, got %q", "ATM withdrawal", rows[0]["Service"])
	}
	if rows[1]["Charge"] != "Rs. 50" {
		t.Errorf("expected %q, got %q", "Rs. 50", rows[1]["Charge"])
	}
}

func TestExtract_SynthesizesPositionalHeaders(t *testing.T) {
	region := Region{
		{"", "", ""},
		{"a", "b", "c"},
	}
	rows := Extract(region)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := map[string]string{"col_1": "a", "col_2": "b", "col_3": "c"}
	for k, v := range want {
		if rows[0][k] != v {
			t.Errorf("expected %s=%q, got %q", k, v, rows[0][k])
		}
	}
}

func TestExtract_RaggedRowsPadWithEmpty(t *testing.T) {
	region := Region{
		{"Fee", "Amount"},
		{"Annual fee"},
	}
	rows := Extract(region)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["Fee"] != "Annual fee" {
		t.Errorf("expected %q, got %q", "Annual fee", rows[0]["Fee"])
	}
	if rows[0]["Amount"] != "" {
		t.Errorf("expected empty cell for missing column, got %q", rows[0]["Amount"])
	}
}

func TestExtract_MalformedRegionYieldsEmpty(t *testing.T) {
	cases := []struct {
		name   string
		region Region
	}{
		{"nil region", nil},
		{"no rows", Region{}},
		{"empty header row", Region{{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rows := Extract(tc.region); len(rows) != 0 {
				t.Errorf("expected no rows, got %d", len(rows))
			}
		})
	}
}

func TestExtract_HeaderOnlyRegion(t *testing.T) {
	region := Region{{"Fee", "Amount"}}
	if rows := Extract(region); len(rows) != 0 {
		t.Errorf("expected no rows for header-only region, got %d", len(rows))
	}
}

func TestExtract_TrimsWhitespace(t *testing.T) {
	region := Region{
		{"  Fee  ", " Amount "},
		{" Annual fee ", "  500 "},
	}
	rows := Extract(region)
	if rows[0]["Fee"] != "Annual fee" {
		t.Errorf("expected trimmed cell, got %q", rows[0]["Fee"])
	}
	if rows[0]["Amount"] != "500" {
		t.Errorf("expected trimmed cell, got %q", rows[0]["Amount"])
	}
}
