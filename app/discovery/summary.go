package discovery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kaslund/statjobs/app/sitecfg"
)

// ListingSummary is one listing as captured from a list page. Date fields
// are ISO-8601 UTC strings; empty means absent.
type ListingSummary struct {
	ListingID   string
	SourceURL   string
	PublishedAt string
	UpdatedAt   string
	Provenance  string
}

// SummaryItem is the raw shape an ItemExtractor yields per result card.
type SummaryItem struct {
	SourceURL    string
	IDCandidates []string
	PublishedAt  string
	UpdatedAt    string
}

// ItemExtractor understands page structure and yields raw summary items.
// It decouples the discovery core from site markup; a goquery-based
// implementation is provided by NewSelectorItemExtractor.
type ItemExtractor func(html string) ([]SummaryItem, error)

// ExtractListSummaries parses a list page into listing summaries, deriving
// a stable ID per item. Items without a source URL are skipped.
func ExtractListSummaries(html string, extractor ItemExtractor) ([]ListingSummary, error) {
	items, err := extractor(html)
	if err != nil {
		return nil, fmt.Errorf("item extraction failed: %w", err)
	}

	var summaries []ListingSummary
	for _, item := range items {
		sourceURL := strings.TrimSpace(item.SourceURL)
		if sourceURL == "" {
			continue
		}

		listingID, prov := DeriveListingID(sourceURL, item.IDCandidates)
		summaries = append(summaries, ListingSummary{
			ListingID:   listingID,
			SourceURL:   sourceURL,
			PublishedAt: item.PublishedAt,
			UpdatedAt:   item.UpdatedAt,
			Provenance:  prov,
		})
	}
	return summaries, nil
}

// NewSelectorItemExtractor builds an ItemExtractor from list selectors.
// Relative detail links are resolved against baseURL when given.
func NewSelectorItemExtractor(sel sitecfg.ListSelectors, baseURL string) ItemExtractor {
	var base *url.URL
	if baseURL != "" {
		base, _ = url.Parse(baseURL)
	}

	return func(html string) ([]SummaryItem, error) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("failed to parse list page: %w", err)
		}

		var items []SummaryItem
		doc.Find(sel.Item).Each(func(_ int, node *goquery.Selection) {
			href, _ := node.Find(sel.Link).First().Attr("href")
			href = strings.TrimSpace(href)
			if href != "" && base != nil {
				if ref, err := url.Parse(href); err == nil {
					href = base.ResolveReference(ref).String()
				}
			}

			item := SummaryItem{SourceURL: href}
			for _, attr := range sel.IDCandidateAttrs {
				if val, ok := node.Attr(attr); ok && strings.TrimSpace(val) != "" {
					item.IDCandidates = append(item.IDCandidates, strings.TrimSpace(val))
				}
			}
			if sel.PublishedAt != "" {
				item.PublishedAt = firstAttrOrText(node, sel.PublishedAt)
			}
			if sel.UpdatedAt != "" {
				item.UpdatedAt = firstAttrOrText(node, sel.UpdatedAt)
			}
			items = append(items, item)
		})
		return items, nil
	}
}

// NewNextPageSentinel returns a HasNextFunc that checks for a pagination
// element in the page HTML.
func NewNextPageSentinel(selector string) HasNextFunc {
	return func(html string, _ int) bool {
		if selector == "" {
			return false
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return false
		}
		return doc.Find(selector).Length() > 0
	}
}

// firstAttrOrText prefers a machine-readable datetime attribute over the
// element text.
func firstAttrOrText(node *goquery.Selection, selector string) string {
	found := node.Find(selector).First()
	if val, ok := found.Attr("datetime"); ok {
		return strings.TrimSpace(val)
	}
	return strings.TrimSpace(found.Text())
}
