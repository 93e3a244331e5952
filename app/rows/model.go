// Package rows models the tabular output: one exploded row per
// (listing, job code) pair, normalized to a fixed column order and type
// set that downstream consumers depend on.
package rows

// DetailFields are the listing-level fields parsed from a detail page.
// Empty strings mean the field was absent; parse misses are not errors.
type DetailFields struct {
	Title              string
	JobTitle           string
	EmployerRaw        string
	EmployerNormalized string
	Locations          []string
	EmploymentType     string
	Extent             string
	SalaryText         string
	PublishedAt        string
	UpdatedAt          string
	ApplyDeadline      string
}

// CodeRow is one detected job code within a listing with its salary
// attribution. IsSharedSalary is true when the salary came from
// listing-level text rather than the code's own block.
type CodeRow struct {
	JobCode        string
	JobTitle       string
	SalaryMin      *int64
	SalaryMax      *int64
	SalaryText     string
	IsSharedSalary bool
}

// ExplodedJobRow is the final output unit, one per (listing_id, job_code).
type ExplodedJobRow struct {
	ListingID          string
	JobCode            string
	JobTitle           string
	EmployerNormalized string
	SalaryMin          *int64
	SalaryMax          *int64
	SalaryText         string
	IsSharedSalary     bool
	PublishedAt        string
	UpdatedAt          string
	ApplyDeadline      string
	SourceURL          string
	ScrapedAt          string
}

// Explode produces one row per code entry. Listing-level fields copy
// unchanged into every row; code-level fields come from the corresponding
// code row.
func Explode(listingID, sourceURL string, fields DetailFields, codeRows []CodeRow, scrapedAt string) []ExplodedJobRow {
	out := make([]ExplodedJobRow, 0, len(codeRows))
	for _, cr := range codeRows {
		out = append(out, ExplodedJobRow{
			ListingID:          listingID,
			JobCode:            cr.JobCode,
			JobTitle:           cr.JobTitle,
			EmployerNormalized: fields.EmployerNormalized,
			SalaryMin:          cr.SalaryMin,
			SalaryMax:          cr.SalaryMax,
			SalaryText:         cr.SalaryText,
			IsSharedSalary:     cr.IsSharedSalary,
			PublishedAt:        fields.PublishedAt,
			UpdatedAt:          fields.UpdatedAt,
			ApplyDeadline:      fields.ApplyDeadline,
			SourceURL:          sourceURL,
			ScrapedAt:          scrapedAt,
		})
	}
	return out
}
