package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Output and state locations
	OutDir     string `long:"out-dir" env:"OUT_DIR" default:"./out" description:"Directory for exported parquet and CSV files"`
	DBPath     string `long:"db" env:"DB_PATH" description:"Path to the SQLite state database (defaults to statjobs.sqlite3 inside out-dir)"`
	SiteConfig string `long:"site-config" env:"SITE_CONFIG" description:"Path to the YAML selector profile (built-in defaults when omitted)"`

	// Scrape behavior
	Full           bool    `long:"full" env:"FULL" description:"Refetch every discovered listing regardless of stored state"`
	StateSector    bool    `long:"state-sector" env:"STATE_SECTOR" description:"Search is pre-filtered to the state sector, enabling title-based org fallback"`
	FuzzyThreshold float64 `long:"fuzzy-threshold" env:"FUZZY_THRESHOLD" default:"0.95" description:"Minimum similarity for fuzzy employer matching (0 disables)"`
	MaxPages       int     `long:"max-pages" env:"MAX_PAGES" description:"Maximum search pages to fetch (0 follows the site's pagination)"`
	Query          string  `long:"query" env:"QUERY" description:"Free-text search query passed to the site"`

	// HTTP client
	FetchDelay time.Duration `long:"fetch-delay" env:"FETCH_DELAY" default:"1s" description:"Minimum delay between HTTP requests"`
	Timeout    time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"HTTP request timeout"`
	UserAgent  string        `long:"user-agent" env:"USER_AGENT" default:"statjobs/1.0" description:"User agent string for HTTP requests"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Oslo)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		OutDir:         raw.OutDir,
		DBPath:         raw.DBPath,
		SiteConfig:     raw.SiteConfig,
		Full:           raw.Full,
		StateSector:    raw.StateSector,
		FuzzyThreshold: raw.FuzzyThreshold,
		MaxPages:       raw.MaxPages,
		Query:          raw.Query,
		FetchDelay:     raw.FetchDelay,
		Timeout:        raw.Timeout,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
