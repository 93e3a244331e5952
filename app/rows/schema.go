package rows

import (
	"fmt"
	"strconv"
)

// ColumnType is one of the three nullable output types.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInt64
	TypeBool
)

func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInt64:
		return "int64"
	case TypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Column names a typed output column.
type Column struct {
	Name string
	Type ColumnType
}

// Columns is the fixed 13-column output schema. Order and types are the
// contract downstream consumers depend on and never vary with input.
var Columns = []Column{
	{"listing_id", TypeText},
	{"job_code", TypeText},
	{"job_title", TypeText},
	{"employer_normalized", TypeText},
	{"salary_min", TypeInt64},
	{"salary_max", TypeInt64},
	{"salary_text", TypeText},
	{"is_shared_salary", TypeBool},
	{"published_at", TypeText},
	{"updated_at", TypeText},
	{"apply_deadline", TypeText},
	{"source_url", TypeText},
	{"scraped_at", TypeText},
}

// Table is the normalized tabular output. Cells are nil, string, int64 or
// bool according to the column type.
type Table struct {
	Columns []Column
	Cells   [][]any
}

// NormalizeSchema coerces rows into the fixed schema. Absent optional
// fields become nulls; the column set, order and types are identical for
// every input, including the empty one.
func NormalizeSchema(input []ExplodedJobRow) *Table {
	table := &Table{Columns: Columns, Cells: make([][]any, 0, len(input))}
	for _, r := range input {
		table.Cells = append(table.Cells, []any{
			textCell(r.ListingID),
			textCell(r.JobCode),
			textCell(r.JobTitle),
			textCell(r.EmployerNormalized),
			intCell(r.SalaryMin),
			intCell(r.SalaryMax),
			textCell(r.SalaryText),
			r.IsSharedSalary,
			textCell(r.PublishedAt),
			textCell(r.UpdatedAt),
			textCell(r.ApplyDeadline),
			textCell(r.SourceURL),
			textCell(r.ScrapedAt),
		})
	}
	return table
}

// CellString renders a cell for delimited-text output; nulls render empty.
func CellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func textCell(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func intCell(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
