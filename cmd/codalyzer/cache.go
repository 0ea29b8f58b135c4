package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/codalyzer/codalyzer/internal/cache"
	"github.com/codalyzer/codalyzer/internal/output"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the analysis result cache",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count, size, and age",
				Action: runCacheStatsCmd,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached results",
				Action: runCacheClearCmd,
			},
		},
	}
}

func openCache(c *cli.Context) (*cache.Cache, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled)
}

func runCacheStatsCmd(c *cli.Context) error {
	ca, err := openCache(c)
	if err != nil {
		return err
	}

	stats, err := ca.GetStats()
	if err != nil {
		return fmt.Errorf("read cache stats: %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable(
		"Cache Statistics",
		[]string{"Metric", "Value"},
		[][]string{
			{"Entries", fmt.Sprintf("%d", stats.Entries)},
			{"Total Size", fmt.Sprintf("%d bytes", stats.TotalSize)},
			{"Oldest Entry", stats.OldestAge.Round(time.Second).String()},
			{"Newest Entry", stats.NewestAge.Round(time.Second).String()},
		},
		nil,
		stats,
	)
	return formatter.Output(table)
}

func runCacheClearCmd(c *cli.Context) error {
	ca, err := openCache(c)
	if err != nil {
		return err
	}
	if err := ca.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()
	formatter.Success("Cache cleared")
	return nil
}
