package rows

import "testing"

func int64ptr(v int64) *int64 { return &v }

func TestExplode_MapsListingAndCodeFields(t *testing.T) {
	fields := DetailFields{
		EmployerNormalized: "forsvaret",
		PublishedAt:        "2024-05-01T00:00:00Z",
		UpdatedAt:          "2024-05-02T00:00:00Z",
		ApplyDeadline:      "2024-06-01T00:00:00Z",
	}
	codeRows := []CodeRow{
		{JobCode: "1234", JobTitle: "Rådgiver", SalaryMin: int64ptr(600000), SalaryMax: int64ptr(750000), SalaryText: "kr 600 000 – 750 000", IsSharedSalary: true},
		{JobCode: "5678", JobTitle: "Seniorrådgiver", SalaryMin: int64ptr(600000), SalaryMax: int64ptr(750000), SalaryText: "kr 600 000 – 750 000", IsSharedSalary: true},
	}

	out := Explode("L1", "https://example.com/detail/L1", fields, codeRows, "2024-05-03T00:00:00Z")

	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	first := out[0]
	if first.ListingID != "L1" || first.SourceURL != "https://example.com/detail/L1" {
		t.Errorf("listing fields not copied: %+v", first)
	}
	if first.EmployerNormalized != "forsvaret" || first.PublishedAt != fields.PublishedAt {
		t.Errorf("listing-level fields not copied into row: %+v", first)
	}
	if *first.SalaryMin != 600000 || !first.IsSharedSalary {
		t.Errorf("code-level fields not mapped: %+v", first)
	}
	if out[1].JobCode != "5678" || out[1].JobTitle != "Seniorrådgiver" {
		t.Errorf("second row = %+v", out[1])
	}
}

func TestExplode_NoCodesNoRows(t *testing.T) {
	out := Explode("L1", "u", DetailFields{}, nil, "2024-01-01T00:00:00Z")
	if len(out) != 0 {
		t.Errorf("expected no rows without code entries, got %d", len(out))
	}
}

func TestNormalizeSchema_FixedColumnsRegardlessOfInput(t *testing.T) {
	inputs := [][]ExplodedJobRow{
		nil, // empty
		{{ListingID: "L1", JobCode: "1234", SourceURL: "u", ScrapedAt: "t"}}, // sparse
		{{ // dense
			ListingID: "L2", JobCode: "5678", JobTitle: "Konsulent",
			EmployerNormalized: "pst", SalaryMin: int64ptr(500000),
			SalaryMax: int64ptr(600000), SalaryText: "kr 500 000 – 600 000",
			IsSharedSalary: false, PublishedAt: "p", UpdatedAt: "u2",
			ApplyDeadline: "d", SourceURL: "u", ScrapedAt: "t",
		}},
	}

	for i, input := range inputs {
		table := NormalizeSchema(input)
		if len(table.Columns) != 13 {
			t.Fatalf("input %d: %d columns, expected 13", i, len(table.Columns))
		}
		for j, col := range table.Columns {
			if col != Columns[j] {
				t.Errorf("input %d: column %d = %v, expected %v", i, j, col, Columns[j])
			}
		}
		if !ComputeMetrics(table).SchemaOK {
			t.Errorf("input %d: schema conformance check failed", i)
		}
	}
}

func TestNormalizeSchema_MissingFieldsBecomeNulls(t *testing.T) {
	table := NormalizeSchema([]ExplodedJobRow{{ListingID: "L1", JobCode: "1234"}})

	row := table.Cells[0]
	if row[0] != "L1" || row[1] != "1234" {
		t.Errorf("present fields wrong: %v", row)
	}
	// job_title, salary_min/max, salary_text and dates are absent.
	for _, idx := range []int{2, 4, 5, 6, 8, 9, 10} {
		if row[idx] != nil {
			t.Errorf("cell %d (%s) = %v, expected null", idx, table.Columns[idx].Name, row[idx])
		}
	}
	if row[7] != false {
		t.Errorf("is_shared_salary = %v, expected false", row[7])
	}
}

func TestComputeMetrics(t *testing.T) {
	table := NormalizeSchema([]ExplodedJobRow{
		{ListingID: "L1", JobCode: "1234", SalaryMin: int64ptr(500000), SalaryMax: int64ptr(600000)},
		{ListingID: "L2", JobCode: "5678"},
	})

	m := ComputeMetrics(table)
	if m.TotalRows != 2 {
		t.Errorf("total = %d", m.TotalRows)
	}
	if m.CodesPresent != 2 || m.CodesPct != 1.0 {
		t.Errorf("codes = %d (%f)", m.CodesPresent, m.CodesPct)
	}
	if m.SalaryPresent != 1 || m.SalaryPct != 0.5 {
		t.Errorf("salary = %d (%f)", m.SalaryPresent, m.SalaryPct)
	}
	if !m.SchemaOK {
		t.Error("schema should conform")
	}
}

func TestComputeMetrics_EmptyTable(t *testing.T) {
	m := ComputeMetrics(NormalizeSchema(nil))
	if m.TotalRows != 0 || m.CodesPct != 0 || m.SalaryPct != 0 {
		t.Errorf("unexpected metrics for empty table: %+v", m)
	}
	if !m.SchemaOK {
		t.Error("empty table still conforms to the schema")
	}
}
