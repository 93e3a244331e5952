package discovery

import (
	"context"
	"fmt"
	"net/url"
)

// Fixed query parameter names of the search endpoint.
const (
	paramSector   = "sector"
	paramOpenOnly = "open_only"
	paramPage     = "page"
	paramQuery    = "q"

	sectorStateValue = "state"
)

// SearchParams parameterize a search URL. The zero value means state
// sector, open listings only, page 1, no free-text query.
type SearchParams struct {
	Sector   string
	OpenOnly bool
	Page     int
	Query    string
}

func (p SearchParams) withDefaults() SearchParams {
	if p.Sector == "" {
		p.Sector = sectorStateValue
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// BuildSearchURL constructs a search URL with the state-sector and
// open-only filters. Extra parameters pass through site-specific knobs
// without coupling them here.
func BuildSearchURL(baseURL string, params SearchParams, extra map[string]string) (string, error) {
	p := params.withDefaults()

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse search base URL: %w", err)
	}

	q := url.Values{}
	q.Set(paramSector, p.Sector)
	q.Set(paramOpenOnly, fmt.Sprintf("%t", p.OpenOnly))
	q.Set(paramPage, fmt.Sprintf("%d", p.Page))
	if p.Query != "" {
		q.Set(paramQuery, p.Query)
	}
	for key, val := range extra {
		q.Set(key, val)
	}

	base.RawQuery = q.Encode()
	return base.String(), nil
}

// FetchFunc fetches a URL and returns the page HTML.
type FetchFunc func(ctx context.Context, url string) (string, error)

// HasNextFunc reports whether another page follows the given page HTML.
type HasNextFunc func(html string, page int) bool

// PaginateOptions bound a paginated search. With MaxPages set pages
// start..MaxPages are fetched; with HasNext set pagination continues until
// the sentinel says stop. When neither is given only a single page is
// fetched, to avoid accidental unbounded loops.
type PaginateOptions struct {
	Params    SearchParams
	Extra     map[string]string
	StartPage int
	MaxPages  int
	HasNext   HasNextFunc
}

// PaginateSearch enumerates search result pages, invoking visit with each
// page number, URL and HTML. It stops on the first fetch or visit error.
func PaginateSearch(ctx context.Context, baseURL string, fetch FetchFunc, opts PaginateOptions, visit func(page int, url, html string) error) error {
	page := opts.StartPage
	if page < 1 {
		page = 1
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		params := opts.Params
		params.Page = page
		pageURL, err := BuildSearchURL(baseURL, params, opts.Extra)
		if err != nil {
			return err
		}

		html, err := fetch(ctx, pageURL)
		if err != nil {
			return fmt.Errorf("failed to fetch search page %d: %w", page, err)
		}
		if err := visit(page, pageURL, html); err != nil {
			return err
		}

		switch {
		case opts.MaxPages > 0:
			if page >= opts.MaxPages {
				return nil
			}
		case opts.HasNext != nil:
			if !opts.HasNext(html, page) {
				return nil
			}
		default:
			// Single page when bounds are unknown.
			return nil
		}
		page++
	}
}
