package discovery

import "testing"

func TestDeriveListingID_CandidatePrecedence(t *testing.T) {
	id, prov := DeriveListingID("https://example.com/detail/xyz", []string{"", " CAND123 "})
	if id != "CAND123" || prov != ProvCandidate {
		t.Errorf("got (%q, %q), expected (CAND123, candidate)", id, prov)
	}
}

func TestDeriveListingID_UUIDPreferred(t *testing.T) {
	url := "https://example.com/jobs/4F8C1B2A-3d4e-5f60-a1b2-334455667788?id=999999"
	id, prov := DeriveListingID(url, nil)
	if id != "4f8c1b2a-3d4e-5f60-a1b2-334455667788" {
		t.Errorf("id = %q, expected lowercased uuid", id)
	}
	if prov != ProvURLUUID {
		t.Errorf("provenance = %q, expected url_uuid", prov)
	}
}

func TestDeriveListingID_NumericPath(t *testing.T) {
	id, prov := DeriveListingID("https://example.com/jobs/department/1234567/details", nil)
	if id != "1234567" || prov != ProvURLNumeric {
		t.Errorf("got (%q, %q), expected (1234567, url_numeric)", id, prov)
	}
}

func TestDeriveListingID_NumericRequiresSixDigits(t *testing.T) {
	// A 5-digit path segment must not become an ID; this URL falls all the
	// way through to the hash.
	id, prov := DeriveListingID("https://example.com/jobs/12345", nil)
	if prov != ProvSHA1URL {
		t.Errorf("provenance = %q, expected sha1_url", prov)
	}
	if len(id) != 40 {
		t.Errorf("expected 40-char sha1 hex digest, got %q", id)
	}
}

func TestDeriveListingID_QueryParam(t *testing.T) {
	id, prov := DeriveListingID("https://example.com/detail?jobId=ABC999", nil)
	if id != "ABC999" || prov != ProvURLQuery {
		t.Errorf("got (%q, %q), expected (ABC999, url_query)", id, prov)
	}
}

func TestDeriveListingID_HashStability(t *testing.T) {
	base := "https://example.com/detail/abc"
	urlA := base + "?b=2&a=1&utm_source=google#section"
	urlB := base + "?a=1&b=2&gclid=123"

	idA, provA := DeriveListingID(urlA, nil)
	idB, provB := DeriveListingID(urlB, nil)

	if provA != ProvSHA1URL || provB != ProvSHA1URL {
		t.Fatalf("provenances = (%q, %q), expected sha1_url for both", provA, provB)
	}
	if idA != idB {
		t.Errorf("hash IDs differ: %q vs %q", idA, idB)
	}
}

func TestNormalizeSourceURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"drops fragment and tracking, sorts query",
			"https://example.com/detail/42?b=2&a=1&utm_source=google#section",
			"https://example.com/detail/42?a=1&b=2",
		},
		{
			"strips trailing slash",
			"https://example.com/jobs/",
			"https://example.com/jobs",
		},
		{
			"keeps root slash",
			"https://example.com/",
			"https://example.com/",
		},
		{
			"drops gclid and fbclid",
			"https://example.com/x?gclid=1&fbclid=2&id=3",
			"https://example.com/x?id=3",
		},
		{
			"drops every utm_ variant by prefix",
			"https://example.com/x?utm_id=7&utm_source_platform=ads&id=3",
			"https://example.com/x?id=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSourceURL(tt.input); got != tt.expected {
				t.Errorf("NormalizeSourceURL(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
