// Package discovery turns list pages into listing summaries with stable
// identifiers. Identity derivation prefers site-supplied IDs and falls
// back to a hash of the canonicalized URL, so the same listing keeps the
// same ID across pages, runs and tracking-parameter noise.
package discovery

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Provenance tags for derived listing IDs.
const (
	ProvCandidate  = "candidate"
	ProvURLUUID    = "url_uuid"
	ProvURLNumeric = "url_numeric"
	ProvURLQuery   = "url_query"
	ProvSHA1URL    = "sha1_url"
)

var (
	uuidRe    = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	numericRe = regexp.MustCompile(`\d{6,}`)
)

// Query parameter keys that carry site-provided listing IDs, in
// precedence order.
var queryIDKeys = []string{"id", "jobId", "job_id", "listingId", "listing_id", "uuid"}

// Tracking parameters dropped during URL canonicalization: every utm_*
// key plus the click identifiers.
var trackingQueryKeys = map[string]bool{
	"gclid":  true,
	"fbclid": true,
}

func isTrackingQueryKey(key string) bool {
	return strings.HasPrefix(key, "utm_") || trackingQueryKeys[key]
}

// DeriveListingID returns a stable listing ID for a detail URL along with
// a provenance tag. Precedence, first non-empty wins:
//
//  1. a caller-supplied candidate (page data attributes)
//  2. a UUID-shaped token anywhere in the URL, lowercased
//  3. a run of 6+ digits in the URL path
//  4. a known ID query parameter
//  5. SHA-1 of the canonicalized URL
//
// The hash fallback always succeeds, so every listing gets an ID.
func DeriveListingID(sourceURL string, idCandidates []string) (string, string) {
	for _, c := range idCandidates {
		if c = strings.TrimSpace(c); c != "" {
			return c, ProvCandidate
		}
	}

	if hit := uuidRe.FindString(sourceURL); hit != "" {
		return strings.ToLower(hit), ProvURLUUID
	}

	parsed, err := url.Parse(sourceURL)
	if err == nil {
		if hit := numericRe.FindString(parsed.Path); hit != "" {
			return hit, ProvURLNumeric
		}

		query := parsed.Query()
		for _, key := range queryIDKeys {
			if val := query.Get(key); val != "" {
				return val, ProvURLQuery
			}
		}
	}

	digest := sha1.Sum([]byte(NormalizeSourceURL(sourceURL)))
	return hex.EncodeToString(digest[:]), ProvSHA1URL
}

// NormalizeSourceURL canonicalizes a URL for stable hashing: the fragment
// and tracking parameters are dropped, remaining query pairs are sorted
// and the trailing slash is trimmed from the path (except root). URLs
// that differ only in those respects canonicalize identically.
func NormalizeSourceURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	path := parsed.Path
	if path != "/" && strings.HasSuffix(path, "/") {
		path = strings.TrimRight(path, "/")
	}

	type pair struct{ key, val string }
	var pairs []pair
	for key, vals := range parsed.Query() {
		if isTrackingQueryKey(key) {
			continue
		}
		for _, v := range vals {
			pairs = append(pairs, pair{key, v})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].val < pairs[j].val
	})

	query := url.Values{}
	for _, p := range pairs {
		query.Add(p.key, p.val)
	}

	canonical := url.URL{
		Scheme:   parsed.Scheme,
		Host:     parsed.Host,
		Path:     path,
		RawQuery: query.Encode(),
	}
	return canonical.String()
}
