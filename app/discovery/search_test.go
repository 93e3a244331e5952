package discovery

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestBuildSearchURL(t *testing.T) {
	url, err := BuildSearchURL("https://example.com/search", SearchParams{OpenOnly: true, Page: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(url, "page=2") {
		t.Errorf("url %q missing page=2", url)
	}
	if !strings.Contains(url, "open_only=true") {
		t.Errorf("url %q missing open_only=true", url)
	}
	if !strings.Contains(url, "sector=state") {
		t.Errorf("url %q missing default sector", url)
	}
}

func TestBuildSearchURL_ExtraParams(t *testing.T) {
	url, err := BuildSearchURL("https://example.com/search", SearchParams{}, map[string]string{"county": "oslo"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(url, "county=oslo") {
		t.Errorf("url %q missing extra param", url)
	}
}

func TestPaginateSearch_Bounded(t *testing.T) {
	fetch := func(_ context.Context, url string) (string, error) {
		return "<html>" + url + "</html>", nil
	}

	var pages []int
	err := PaginateSearch(context.Background(), "https://example.com/search", fetch,
		PaginateOptions{MaxPages: 3},
		func(page int, url, html string) error {
			pages = append(pages, page)
			if !strings.Contains(url, fmt.Sprintf("page=%d", page)) {
				t.Errorf("url %q missing page=%d", url, page)
			}
			if !strings.Contains(html, url) {
				t.Errorf("html should echo url")
			}
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 3 || pages[0] != 1 || pages[2] != 3 {
		t.Errorf("pages = %v, expected [1 2 3]", pages)
	}
}

func TestPaginateSearch_Sentinel(t *testing.T) {
	fetch := func(_ context.Context, url string) (string, error) {
		return url, nil
	}
	hasNext := func(_ string, page int) bool { return page < 3 }

	var pages []int
	err := PaginateSearch(context.Background(), "https://example.com/search", fetch,
		PaginateOptions{HasNext: hasNext},
		func(page int, _, _ string) error {
			pages = append(pages, page)
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 3 {
		t.Errorf("pages = %v, expected [1 2 3]", pages)
	}
}

func TestPaginateSearch_DefaultSinglePage(t *testing.T) {
	fetch := func(_ context.Context, url string) (string, error) {
		return url, nil
	}

	count := 0
	err := PaginateSearch(context.Background(), "https://example.com/search", fetch,
		PaginateOptions{},
		func(int, string, string) error {
			count++
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("fetched %d pages, expected exactly 1 without bounds", count)
	}
}

func TestPaginateSearch_FetchErrorStops(t *testing.T) {
	fetch := func(_ context.Context, _ string) (string, error) {
		return "", fmt.Errorf("boom")
	}

	err := PaginateSearch(context.Background(), "https://example.com/search", fetch,
		PaginateOptions{MaxPages: 3},
		func(int, string, string) error { return nil })
	if err == nil {
		t.Error("expected fetch error to propagate")
	}
}
