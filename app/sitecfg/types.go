package sitecfg

// SiteConfig bundles everything site-specific: where to search and which
// selectors extract list items and detail fields. Keeping selectors here
// lets the rest of the scraper survive site markup changes.
type SiteConfig struct {
	Site   SiteInfo        `yaml:"site"`
	List   ListSelectors   `yaml:"list"`
	Detail DetailSelectors `yaml:"detail"`
}

// SiteInfo contains basic site information
type SiteInfo struct {
	Name      string `yaml:"name"`
	SearchURL string `yaml:"search_url"`
}

// ListSelectors locate listing summaries on a search/list page.
type ListSelectors struct {
	Item             string   `yaml:"item"`               // one result card/row
	Link             string   `yaml:"link"`               // detail link inside an item
	PublishedAt      string   `yaml:"published_at"`       // optional
	UpdatedAt        string   `yaml:"updated_at"`         // optional
	IDCandidateAttrs []string `yaml:"id_candidate_attrs"` // data-* attributes holding site IDs
	NextPage         string   `yaml:"next_page"`          // optional pagination sentinel
}

// DetailSelectors locate fields on a detail page. Empty selectors simply
// yield absent fields.
type DetailSelectors struct {
	Title          string `yaml:"title"`
	JobTitle       string `yaml:"job_title"`
	Employer       string `yaml:"employer"`
	Locations      string `yaml:"locations"`
	EmploymentType string `yaml:"employment_type"`
	Extent         string `yaml:"extent"`
	SalaryText     string `yaml:"salary_text"`
	JobCodeBlocks  string `yaml:"job_code_blocks"`
	PublishedAt    string `yaml:"published_at"`
	UpdatedAt      string `yaml:"updated_at"`
	ApplyDeadline  string `yaml:"apply_deadline"`
}
