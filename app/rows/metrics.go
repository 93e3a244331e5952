package rows

// Metrics summarize extraction success over a normalized table.
type Metrics struct {
	TotalRows     int
	CodesPresent  int
	CodesPct      float64
	SalaryPresent int
	SalaryPct     float64
	SchemaOK      bool
}

// Column indexes into the fixed schema, kept in sync with Columns.
const (
	colJobCode   = 1
	colSalaryMin = 4
	colSalaryMax = 5
)

// ComputeMetrics derives success metrics purely from the output table,
// using the fixed schema as ground truth.
func ComputeMetrics(table *Table) Metrics {
	m := Metrics{
		TotalRows: len(table.Cells),
		SchemaOK:  schemaConforms(table),
	}

	for _, row := range table.Cells {
		if row[colJobCode] != nil {
			m.CodesPresent++
		}
		if row[colSalaryMin] != nil || row[colSalaryMax] != nil {
			m.SalaryPresent++
		}
	}

	if m.TotalRows > 0 {
		m.CodesPct = float64(m.CodesPresent) / float64(m.TotalRows)
		m.SalaryPct = float64(m.SalaryPresent) / float64(m.TotalRows)
	}
	return m
}

func schemaConforms(table *Table) bool {
	if len(table.Columns) != len(Columns) {
		return false
	}
	for i, col := range table.Columns {
		if col != Columns[i] {
			return false
		}
	}
	for _, row := range table.Cells {
		if len(row) != len(Columns) {
			return false
		}
		for i, cell := range row {
			if !cellConforms(cell, Columns[i].Type) {
				return false
			}
		}
	}
	return true
}

func cellConforms(cell any, t ColumnType) bool {
	if cell == nil {
		return true
	}
	switch t {
	case TypeText:
		_, ok := cell.(string)
		return ok
	case TypeInt64:
		_, ok := cell.(int64)
		return ok
	case TypeBool:
		_, ok := cell.(bool)
		return ok
	default:
		return false
	}
}
