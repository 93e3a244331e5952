// Package detail orchestrates field and job-code extraction for one
// detail page. Selectors stay opaque to the rest of the pipeline: the
// driver extracts listing-level fields once, then walks code blocks and
// associates each code with a salary, block-local text first and
// listing-level text as the shared fallback.
package detail

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kaslund/statjobs/app/jobcode"
	"github.com/kaslund/statjobs/app/rows"
	"github.com/kaslund/statjobs/app/salary"
	"github.com/kaslund/statjobs/app/sitecfg"
	"github.com/kaslund/statjobs/app/textnorm"
)

// Driver parses detail pages with a fixed selector profile.
type Driver struct {
	selectors sitecfg.DetailSelectors
}

func NewDriver(selectors sitecfg.DetailSelectors) *Driver {
	return &Driver{selectors: selectors}
}

// Parse extracts listing-level fields and per-code salary rows from a
// detail page. Selector misses yield absent fields, never errors; only
// unparseable HTML fails.
func (d *Driver) Parse(html string) (rows.DetailFields, []rows.CodeRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return rows.DetailFields{}, nil, fmt.Errorf("failed to parse detail page: %w", err)
	}

	fields := d.extractFields(doc)
	codeRows := d.extractCodeRows(doc, fields)
	return fields, codeRows, nil
}

func (d *Driver) extractFields(doc *goquery.Document) rows.DetailFields {
	sel := d.selectors

	employerRaw := firstText(doc, sel.Employer)

	return rows.DetailFields{
		Title:              firstText(doc, sel.Title),
		JobTitle:           firstText(doc, sel.JobTitle),
		EmployerRaw:        employerRaw,
		EmployerNormalized: textnorm.Normalize(employerRaw),
		Locations:          splitLocations(firstText(doc, sel.Locations)),
		EmploymentType:     firstText(doc, sel.EmploymentType),
		Extent:             firstText(doc, sel.Extent),
		SalaryText:         firstText(doc, sel.SalaryText),
		PublishedAt:        firstDatetime(doc, sel.PublishedAt),
		UpdatedAt:          firstDatetime(doc, sel.UpdatedAt),
		ApplyDeadline:      firstDatetime(doc, sel.ApplyDeadline),
	}
}

// extractCodeRows walks code blocks (or the whole page when no block
// selector matches) and builds one code row per detected code. Salary
// attribution is block-local first, listing-level fallback second, never
// the reverse. Blocks without codes contribute nothing.
func (d *Driver) extractCodeRows(doc *goquery.Document, fields rows.DetailFields) []rows.CodeRow {
	blocks := blockTexts(doc, d.selectors.JobCodeBlocks)
	if len(blocks) == 0 {
		blocks = []string{pageText(doc)}
	}

	var codeRows []rows.CodeRow
	for _, blockText := range blocks {
		pairs := jobcode.ExtractCodeTitles(blockText)
		if len(pairs) == 0 {
			continue
		}

		var salaryMin, salaryMax *int64
		salaryText := fields.SalaryText
		shared := salaryText != ""

		if res, ok := salary.Parse(blockText); ok {
			salaryMin, salaryMax = &res.Min, &res.Max
			salaryText = res.Text
			shared = false
		} else if res, ok := salary.Parse(fields.SalaryText); ok {
			salaryMin, salaryMax = &res.Min, &res.Max
			salaryText = res.Text
			shared = true
		}

		for _, pair := range pairs {
			codeRows = append(codeRows, rows.CodeRow{
				JobCode:        pair.Code,
				JobTitle:       pair.Title,
				SalaryMin:      salaryMin,
				SalaryMax:      salaryMax,
				SalaryText:     salaryText,
				IsSharedSalary: shared,
			})
		}
	}
	return codeRows
}

func blockTexts(doc *goquery.Document, selector string) []string {
	if selector == "" {
		return nil
	}
	var texts []string
	doc.Find(selector).Each(func(_ int, node *goquery.Selection) {
		if text := strings.TrimSpace(node.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

func pageText(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() > 0 {
		return strings.TrimSpace(body.Text())
	}
	return strings.TrimSpace(doc.Text())
}

func firstText(doc *goquery.Document, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find(selector).First().Text()), " ")
}

// firstDatetime prefers a machine-readable datetime attribute over the
// element text.
func firstDatetime(doc *goquery.Document, selector string) string {
	if selector == "" {
		return ""
	}
	found := doc.Find(selector).First()
	if val, ok := found.Attr("datetime"); ok {
		return strings.TrimSpace(val)
	}
	return strings.Join(strings.Fields(found.Text()), " ")
}

func splitLocations(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '/'
	})
	var locations []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			locations = append(locations, p)
		}
	}
	return locations
}
