package discovery

import (
	"testing"

	"github.com/kaslund/statjobs/app/sitecfg"
)

const listPageHTML = `
<html><body>
  <div class="result-item" data-job-id="JOB-1001">
    <a class="result-link" href="/jobs/detail?id=1001">Rådgiver</a>
    <time class="published" datetime="2024-05-01T00:00:00Z">1. mai</time>
    <time class="updated" datetime="2024-05-02T00:00:00Z">2. mai</time>
  </div>
  <div class="result-item">
    <a class="result-link" href="https://jobs.example.com/jobs/9876543">Konsulent</a>
  </div>
  <div class="result-item">
    <span>no link here</span>
  </div>
</body></html>`

func testListSelectors() sitecfg.ListSelectors {
	return sitecfg.ListSelectors{
		Item:             ".result-item",
		Link:             "a.result-link",
		PublishedAt:      "time.published",
		UpdatedAt:        "time.updated",
		IDCandidateAttrs: []string{"data-job-id"},
	}
}

func TestExtractListSummaries(t *testing.T) {
	extractor := NewSelectorItemExtractor(testListSelectors(), "https://jobs.example.com")

	summaries, err := ExtractListSummaries(listPageHTML, extractor)
	if err != nil {
		t.Fatal(err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries (item without link skipped), got %d", len(summaries))
	}

	first := summaries[0]
	if first.ListingID != "JOB-1001" || first.Provenance != ProvCandidate {
		t.Errorf("first summary = (%q, %q), expected data attribute candidate", first.ListingID, first.Provenance)
	}
	if first.SourceURL != "https://jobs.example.com/jobs/detail?id=1001" {
		t.Errorf("relative link not resolved: %q", first.SourceURL)
	}
	if first.PublishedAt != "2024-05-01T00:00:00Z" || first.UpdatedAt != "2024-05-02T00:00:00Z" {
		t.Errorf("dates = (%q, %q)", first.PublishedAt, first.UpdatedAt)
	}

	second := summaries[1]
	if second.ListingID != "9876543" || second.Provenance != ProvURLNumeric {
		t.Errorf("second summary = (%q, %q), expected numeric URL id", second.ListingID, second.Provenance)
	}
}

func TestNewNextPageSentinel(t *testing.T) {
	sentinel := NewNextPageSentinel("a.next-page")

	if !sentinel(`<html><a class="next-page" href="?page=2">neste</a></html>`, 1) {
		t.Error("expected next page to be detected")
	}
	if sentinel(`<html><p>siste side</p></html>`, 5) {
		t.Error("expected no next page")
	}
	if NewNextPageSentinel("")("<html></html>", 1) {
		t.Error("empty selector must never report a next page")
	}
}
