package output

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/kaslund/statjobs/app/rows"
)

// parquetRow mirrors the fixed output schema; pointer fields map to
// optional Parquet columns.
type parquetRow struct {
	ListingID          *string `parquet:"listing_id,optional"`
	JobCode            *string `parquet:"job_code,optional"`
	JobTitle           *string `parquet:"job_title,optional"`
	EmployerNormalized *string `parquet:"employer_normalized,optional"`
	SalaryMin          *int64  `parquet:"salary_min,optional"`
	SalaryMax          *int64  `parquet:"salary_max,optional"`
	SalaryText         *string `parquet:"salary_text,optional"`
	IsSharedSalary     *bool   `parquet:"is_shared_salary,optional"`
	PublishedAt        *string `parquet:"published_at,optional"`
	UpdatedAt          *string `parquet:"updated_at,optional"`
	ApplyDeadline      *string `parquet:"apply_deadline,optional"`
	SourceURL          *string `parquet:"source_url,optional"`
	ScrapedAt          *string `parquet:"scraped_at,optional"`
}

// WriteParquet writes the table to path. The logical content matches the
// CSV writer exactly.
func WriteParquet(table *rows.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create Parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[parquetRow](file)

	records := make([]parquetRow, 0, len(table.Cells))
	for _, row := range table.Cells {
		records = append(records, parquetRow{
			ListingID:          textPtr(row[0]),
			JobCode:            textPtr(row[1]),
			JobTitle:           textPtr(row[2]),
			EmployerNormalized: textPtr(row[3]),
			SalaryMin:          intPtr(row[4]),
			SalaryMax:          intPtr(row[5]),
			SalaryText:         textPtr(row[6]),
			IsSharedSalary:     boolPtr(row[7]),
			PublishedAt:        textPtr(row[8]),
			UpdatedAt:          textPtr(row[9]),
			ApplyDeadline:      textPtr(row[10]),
			SourceURL:          textPtr(row[11]),
			ScrapedAt:          textPtr(row[12]),
		})
	}

	if len(records) > 0 {
		if _, err := writer.Write(records); err != nil {
			return fmt.Errorf("failed to write Parquet rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close Parquet writer: %w", err)
	}
	return nil
}

func textPtr(cell any) *string {
	if v, ok := cell.(string); ok {
		return &v
	}
	return nil
}

func intPtr(cell any) *int64 {
	if v, ok := cell.(int64); ok {
		return &v
	}
	return nil
}

func boolPtr(cell any) *bool {
	if v, ok := cell.(bool); ok {
		return &v
	}
	return nil
}
