// fetch-prices downloads hourly electricity spot prices from the EnergyZero
// API for one or more calendar years and writes one canonical JSON dataset
// per year for the simulation front end.
//
// Usage:
//
//	fetch-prices 2023
//	fetch-prices -out site/data 2019 2020 2021 2022 2023 2024
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"time"

	"battery-sim-data/internal/config"
	"battery-sim-data/internal/data"
	"battery-sim-data/internal/metrics"
	"battery-sim-data/internal/pipeline"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config (optional)")
	outDir := flag.String("out", "", "output directory (overrides config)")
	mode := flag.String("mode", "", "planning mode: windowed or whole-year (overrides config)")
	flag.Usage = usage
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logger.Error("load config", "path", *cfgPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *mode != "" {
		cfg.Fetch.Mode = *mode
		if err := cfg.Validate(); err != nil {
			logger.Error("invalid mode", "err", err)
			os.Exit(1)
		}
	}

	// All year arguments must parse before any network activity starts:
	// one bad argument aborts the whole batch up front.
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	years := make([]int, 0, flag.NArg())
	for _, arg := range flag.Args() {
		year, err := strconv.Atoi(arg)
		if err != nil {
			logger.Error("invalid year argument", "arg", arg)
			os.Exit(1)
		}
		years = append(years, year)
	}
	sort.Ints(years)

	zone, err := time.LoadLocation(cfg.Fetch.Zone)
	if err != nil {
		logger.Error("load time zone", "zone", cfg.Fetch.Zone, "err", err)
		os.Exit(1)
	}

	metrics.Init()

	client := data.NewEnergyZeroClient(cfg.Service.BaseURL)
	client.Client.Timeout = cfg.Service.Timeout()
	client.MaxRetries = cfg.Service.MaxRetries
	client.RetryBackoff = cfg.Service.Backoff()
	client.Logger = logger

	pipe := pipeline.New(client, zone, pipeline.PlanMode(cfg.Fetch.Mode), cfg.Output.Dir, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Years are processed one at a time; a fetch failure aborts only its
	// own year and the batch moves on.
	failed := 0
	for _, year := range years {
		if year < cfg.Fetch.FloorYear {
			logger.Warn("service may have no data for year",
				"year", year,
				"floor", cfg.Fetch.FloorYear,
			)
		}

		outcome := pipe.RunYear(ctx, year)
		if outcome.Failed() {
			logger.Error("year aborted", "year", year, "err", outcome.Err)
			failed++
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if err := data.UpdateCatalog(cfg.Output.Dir, data.Dataset{
			Kind:  "prices",
			Year:  year,
			File:  fmt.Sprintf("prices_%d.json", year),
			Count: outcome.Series.Count,
		}); err != nil {
			logger.Warn("update catalog", "err", err)
		}
	}

	logger.Info("batch finished", "years", len(years), "failed", failed)
	if failed == len(years) {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fetch-prices [flags] <year> [year...]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "flags:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "notes:")
	fmt.Fprintln(os.Stderr, "  - EnergyZero has hourly data from 2015 onwards")
	fmt.Fprintln(os.Stderr, "  - output is one prices_<year>.json per year, overwritten if present")
}
