// Package pipeline wires discovery, change detection, detail extraction
// and output into one synchronous run. Listings are fetched, parsed and
// fingerprinted one at a time in discovery order; per-listing failures are
// counted and reported, never swallowed, and a listing's fingerprint is
// only updated after its detail parse fully succeeded.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/kaslund/statjobs/app/detail"
	"github.com/kaslund/statjobs/app/discovery"
	"github.com/kaslund/statjobs/app/orgmatch"
	"github.com/kaslund/statjobs/app/output"
	"github.com/kaslund/statjobs/app/rows"
	"github.com/kaslund/statjobs/app/sitecfg"
	"github.com/kaslund/statjobs/app/state"
)

// Output filenames inside the output directory.
const (
	ParquetFilename = "jobs_exploded.parquet"
	CSVFilename     = "jobs_exploded.csv"
)

// Fetcher supplies raw page HTML. The network lives behind this boundary;
// nothing in the pipeline itself blocks on I/O other than through it.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Options configures a run.
type Options struct {
	OutDir         string
	Full           bool    // refetch every discovered listing
	StateSector    bool    // enables the title-based org fallback
	FuzzyThreshold float64 // 0 disables fuzzy org matching
	MaxPages       int     // 0 means use the site's next-page sentinel
	SearchQuery    string
}

// Summary reports what a run did. Failed listings make the run
// unsuccessful without aborting the remaining candidates.
type Summary struct {
	Pages      int
	Summaries  int
	Candidates int
	Processed  int
	Failed     int
	Rows       int
	OrgCounts  map[string]int
	Metrics    rows.Metrics
}

// Run is one scraping pass over the site.
type Run struct {
	store     *state.Store
	fetcher   Fetcher
	site      *sitecfg.SiteConfig
	extractor discovery.ItemExtractor
	driver    *detail.Driver
	matcher   *orgmatch.Matcher
	opts      Options
}

func NewRun(store *state.Store, fetcher Fetcher, site *sitecfg.SiteConfig, opts Options) *Run {
	return &Run{
		store:     store,
		fetcher:   fetcher,
		site:      site,
		extractor: discovery.NewSelectorItemExtractor(site.List, site.Site.SearchURL),
		driver:    detail.NewDriver(site.Detail),
		matcher:   orgmatch.NewMatcher(orgmatch.Options{FuzzyThreshold: opts.FuzzyThreshold}),
		opts:      opts,
	}
}

// Execute performs the full pass: discover summaries, select candidates
// against pre-upsert state, record the batch, then fetch and parse each
// candidate and write the exploded output. Store and writer failures are
// fatal; per-listing fetch/parse failures only count against the summary.
func (r *Run) Execute(ctx context.Context) (Summary, error) {
	started := time.Now()
	seenAt := started.UTC().Format("2006-01-02T15:04:05Z")
	summary := Summary{OrgCounts: make(map[string]int)}

	summaries, pages, err := r.discover(ctx)
	if err != nil {
		return summary, err
	}
	summary.Pages = pages
	summary.Summaries = len(summaries)

	// Selection must see pre-upsert state for this batch.
	candidates, err := r.store.SelectDetailCandidates(summaries, r.opts.Full)
	if err != nil {
		return summary, err
	}
	summary.Candidates = len(candidates)

	if _, err := r.store.UpsertFromSummaries(summaries, seenAt); err != nil {
		return summary, err
	}

	slog.Info("Discovery completed",
		"pages", pages,
		"summaries", len(summaries),
		"candidates", len(candidates))

	bySummaryID := make(map[string]discovery.ListingSummary)
	for _, s := range summaries {
		if _, ok := bySummaryID[s.ListingID]; !ok {
			bySummaryID[s.ListingID] = s
		}
	}

	var exploded []rows.ExplodedJobRow
	processed := make(map[string]bool)

	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if processed[cand.ListingID] {
			continue
		}
		processed[cand.ListingID] = true

		listingRows, orgTag, fingerprint, err := r.processListing(ctx, bySummaryID[cand.ListingID], cand, seenAt)
		if err != nil {
			slog.Warn("Listing failed",
				"listing_id", cand.ListingID,
				"reason", cand.Reason,
				"error", err)
			summary.Failed++
			continue
		}
		// A fingerprint write failure is a store failure, not a listing
		// failure, and aborts the run.
		if err := r.store.UpdateDetailFingerprint(cand.ListingID, fingerprint); err != nil {
			return summary, err
		}
		summary.Processed++
		if orgTag != "" {
			summary.OrgCounts[orgTag]++
		}
		exploded = append(exploded, listingRows...)
	}

	table := rows.NormalizeSchema(exploded)
	summary.Rows = len(table.Cells)

	if r.opts.OutDir != "" {
		if err := output.WriteParquet(table, filepath.Join(r.opts.OutDir, ParquetFilename)); err != nil {
			return summary, err
		}
		if err := output.WriteCSV(table, filepath.Join(r.opts.OutDir, CSVFilename)); err != nil {
			return summary, err
		}
	}

	summary.Metrics = rows.ComputeMetrics(table)

	slog.Info("Run completed",
		"duration", time.Since(started),
		"processed", summary.Processed,
		"failed", summary.Failed,
		"rows", summary.Rows,
		"codes_pct", summary.Metrics.CodesPct,
		"salary_pct", summary.Metrics.SalaryPct,
		"schema_ok", summary.Metrics.SchemaOK)

	return summary, nil
}

// discover paginates the search and accumulates listing summaries. The
// pagination bound is MaxPages when set, otherwise the site's next-page
// sentinel.
func (r *Run) discover(ctx context.Context) ([]discovery.ListingSummary, int, error) {
	opts := discovery.PaginateOptions{
		Params:   discovery.SearchParams{OpenOnly: true, Query: r.opts.SearchQuery},
		MaxPages: r.opts.MaxPages,
	}
	if opts.MaxPages == 0 {
		opts.HasNext = discovery.NewNextPageSentinel(r.site.List.NextPage)
	}

	var summaries []discovery.ListingSummary
	pages := 0
	err := discovery.PaginateSearch(ctx, r.site.Site.SearchURL, r.fetcher.Get, opts,
		func(page int, url, html string) error {
			pages = page
			pageSummaries, err := discovery.ExtractListSummaries(html, r.extractor)
			if err != nil {
				return fmt.Errorf("failed to extract summaries from page %d: %w", page, err)
			}
			slog.Debug("List page processed", "page", page, "url", url, "items", len(pageSummaries))
			summaries = append(summaries, pageSummaries...)
			return nil
		})
	if err != nil {
		return nil, pages, err
	}
	return summaries, pages, nil
}

// processListing fetches and parses one candidate, returning the exploded
// rows, the matched org tag and the fingerprint of the fetched page. It
// never touches the store: the caller persists the fingerprint, so store
// failures stay distinct from per-listing fetch/parse failures.
func (r *Run) processListing(ctx context.Context, summary discovery.ListingSummary, cand state.Candidate, scrapedAt string) ([]rows.ExplodedJobRow, string, string, error) {
	if summary.SourceURL == "" {
		return nil, "", "", fmt.Errorf("no source URL for listing %s", cand.ListingID)
	}

	html, err := r.fetcher.Get(ctx, summary.SourceURL)
	if err != nil {
		return nil, "", "", fmt.Errorf("detail fetch failed: %w", err)
	}

	fields, codeRows, err := r.driver.Parse(html)
	if err != nil {
		return nil, "", "", fmt.Errorf("detail parse failed: %w", err)
	}

	// Dates from the list page back-fill fields the detail page lacked.
	if fields.PublishedAt == "" {
		fields.PublishedAt = summary.PublishedAt
	}
	if fields.UpdatedAt == "" {
		fields.UpdatedAt = summary.UpdatedAt
	}

	orgTag, orgProv := r.matcher.Match(fields.EmployerRaw, fields.Title, r.opts.StateSector)
	slog.Debug("Listing processed",
		"listing_id", cand.ListingID,
		"reason", cand.Reason,
		"org", orgTag,
		"org_provenance", orgProv,
		"codes", len(codeRows))

	listingRows := rows.Explode(cand.ListingID, summary.SourceURL, fields, codeRows, scrapedAt)
	return listingRows, orgTag, state.ComputeFingerprint(html), nil
}
