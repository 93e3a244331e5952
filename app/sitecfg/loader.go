// Package sitecfg loads the site-specific selector profile from a YAML
// file, falling back to built-in defaults when no file is given.
package sitecfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in selector profile for the target site.
func Default() *SiteConfig {
	return &SiteConfig{
		Site: SiteInfo{
			Name:      "public-state-jobs",
			SearchURL: "https://example.invalid/search",
		},
		List: ListSelectors{
			Item:             ".result-item",
			Link:             "a.result-link",
			PublishedAt:      "time.published",
			UpdatedAt:        "time.updated",
			IDCandidateAttrs: []string{"data-job-id", "data-id"},
			NextPage:         "a.next-page",
		},
		Detail: DetailSelectors{
			Title:          "h1.job-title",
			Employer:       ".employer-name",
			Locations:      ".job-locations",
			EmploymentType: ".employment-type",
			Extent:         ".employment-extent",
			SalaryText:     ".salary",
			JobCodeBlocks:  ".job-codes",
			PublishedAt:    "time.published",
			UpdatedAt:      "time.updated",
			ApplyDeadline:  "time.deadline",
		},
	}
}

// Load reads a selector profile from path. An empty path returns the
// built-in defaults.
func Load(path string) (*SiteConfig, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site config: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse site config YAML: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid site config %s: %w", path, err)
	}

	return config, nil
}

func validate(config *SiteConfig) error {
	if config.Site.SearchURL == "" {
		return fmt.Errorf("site.search_url is required")
	}
	if config.List.Item == "" {
		return fmt.Errorf("list.item selector is required")
	}
	if config.List.Link == "" {
		return fmt.Errorf("list.link selector is required")
	}
	return nil
}
