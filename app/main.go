package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/kaslund/statjobs/app/cfg"
	"github.com/kaslund/statjobs/app/fetch"
	"github.com/kaslund/statjobs/app/pipeline"
	"github.com/kaslund/statjobs/app/sitecfg"
	"github.com/kaslund/statjobs/app/state"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting statjobs run", "version", appCfg.Version)

	site, err := sitecfg.Load(appCfg.SiteConfig)
	if err != nil {
		slog.Error("Failed to load site config", "error", err)
		os.Exit(1)
	}
	slog.Info("Site config loaded", "site", site.Site.Name, "search_url", site.Site.SearchURL)

	if err := os.MkdirAll(appCfg.OutDir, 0o755); err != nil {
		slog.Error("Failed to create output directory", "dir", appCfg.OutDir, "error", err)
		os.Exit(1)
	}

	dbPath := appCfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(appCfg.OutDir, state.DBFilename)
	}
	store, err := state.Open(dbPath)
	if err != nil {
		slog.Error("Failed to open state database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("State database opened", "path", dbPath)

	client := fetch.NewClient(fetch.Options{
		UserAgent: appCfg.UserAgent,
		Timeout:   appCfg.Timeout,
		Delay:     appCfg.FetchDelay,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := pipeline.NewRun(store, client, site, pipeline.Options{
		OutDir:         appCfg.OutDir,
		Full:           appCfg.Full,
		StateSector:    appCfg.StateSector,
		FuzzyThreshold: appCfg.FuzzyThreshold,
		MaxPages:       appCfg.MaxPages,
		SearchQuery:    appCfg.Query,
	})

	summary, err := run.Execute(ctx)
	if err != nil {
		slog.Error("Run failed", "error", err)
		os.Exit(1)
	}
	if summary.Failed > 0 {
		slog.Error("Run completed with listing failures",
			"failed", summary.Failed,
			"processed", summary.Processed)
		os.Exit(1)
	}
}
