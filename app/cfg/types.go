package cfg

import "time"

type Cfg struct {
	// Output and state locations
	OutDir     string
	DBPath     string
	SiteConfig string

	// Scrape behavior
	Full           bool
	StateSector    bool
	FuzzyThreshold float64
	MaxPages       int
	Query          string

	// HTTP client
	FetchDelay time.Duration
	Timeout    time.Duration
	UserAgent  string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
