package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/analysis"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/commit"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/config"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/dataset"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/ladder"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/scenario"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/search"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "optimize":
		cmdOptimize(os.Args[2:])
	case "ladder":
		cmdLadder(os.Args[2:])
	case "scenario":
		cmdScenario(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli optimize --data demand.csv [--config config.yaml] [--method grid] [--out segments.csv]")
	fmt.Println("  cli ladder   --data demand.csv [--config config.yaml] [--period-hours 168]")
	fmt.Println("  cli scenario --data demand.csv [--config config.yaml] [--weeks 4] [--trend 0.2]")
	fmt.Println("  cli rank     --data dir-or-files")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - optimize finds the commitment level minimizing total cost")
	fmt.Println("  - ladder compares per-week commitment levels against one flat level")
	fmt.Println("  - scenario measures forecast sensitivity under a compounding trend")
	fmt.Println("  - rank orders deployments by commitment savings")
}

func cmdOptimize(args []string) {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to dataset CSV")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	method := fs.String("method", "", "Search method: grid, bounded, numeric (overrides config)")
	outPath := fs.String("out", "", "Optional path to write the segment CSV")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *method != "" {
		cfg.Search.Method = *method
	}
	series := loadSeries(*dataPath, cfg)

	res, err := search.Minimize(series, cfg.Method(), cfg.SearchOptions())
	if err != nil {
		log.WithError(err).Fatal("search failed")
	}

	seg, err := commit.Evaluate(series, res.Level, cfg.Premium)
	if err != nil {
		log.WithError(err).Fatal("evaluate failed")
	}

	fmt.Printf("method=%s premium=%.2f intervals=%d\n", res.Method, cfg.Premium, len(seg.Rows))
	fmt.Printf("optimal level = %.4f\n", res.Level)
	fmt.Printf("total cost    = %.2f (used=%.2f unused=%.2f on_demand=%.2f)\n",
		seg.Total, seg.UsedTotal, seg.UnusedTotal, seg.OnDemandCostTotal)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			log.WithError(err).Fatal("create output dir")
		}
		if err := commit.WriteSegmentsCSV(*outPath, seg); err != nil {
			log.WithError(err).Fatal("write segment CSV")
		}
		fmt.Printf("wrote %d rows to %s\n", len(seg.Rows), *outPath)
	}
}

func cmdLadder(args []string) {
	fs := flag.NewFlagSet("ladder", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to dataset CSV")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	periodHours := fs.Int("period-hours", 0, "Sub-period length in hours (overrides config)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *periodHours > 0 {
		cfg.Ladder.PeriodHours = *periodHours
	}
	series := loadSeries(*dataPath, cfg)

	cmp, err := ladder.CompareFlat(series, cfg.Ladder.PeriodHours, cfg.Method(), cfg.SearchOptions())
	if err != nil {
		log.WithError(err).Fatal("ladder comparison failed")
	}

	fmt.Printf("%-6s %-20s %-10s %-12s\n", "rung", "start", "level", "cost")
	for i, r := range cmp.Plan.Rungs {
		fmt.Printf("%-6d %-20s %-10.4f %-12.2f\n", i+1, r.Start.Format("2006-01-02 15:04"), r.Level, r.Cost)
	}
	fmt.Printf("\nflat   level=%.4f cost=%.2f\n", cmp.FlatLevel, cmp.FlatCost)
	fmt.Printf("ladder cost=%.2f savings=%.2f\n", cmp.LadderCost, cmp.Savings)
}

func cmdScenario(args []string) {
	fs := flag.NewFlagSet("scenario", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to dataset CSV")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	weeks := fs.Int("weeks", 0, "Forecast horizon in weeks (overrides config)")
	trend := fs.Float64("trend", 0, "Annual demand trend, e.g. 0.2 for +20%/yr (overrides config)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *weeks > 0 {
		cfg.Scenario.Weeks = *weeks
	}
	// --trend 0 is a meaningful override of a configured trend, so the
	// zero value cannot stand in for "not passed".
	if flagPassed(fs, "trend") {
		cfg.Scenario.AnnualTrend = *trend
	}
	series := loadSeries(*dataPath, cfg)

	sens, err := scenario.CompareForecast(series, cfg.Scenario.Weeks, cfg.Scenario.AnnualTrend, cfg.Method(), cfg.SearchOptions())
	if err != nil {
		log.WithError(err).Fatal("scenario comparison failed")
	}

	fmt.Printf("horizon=%dw trend=%.1f%%/yr\n", sens.Weeks, sens.AnnualTrend*100)
	fmt.Printf("actuals  level=%.4f cost on future=%.2f\n", sens.ActualsLevel, sens.ActualsCost)
	fmt.Printf("forecast level=%.4f cost on future=%.2f\n", sens.ForecastLevel, sens.ForecastCost)
	fmt.Printf("delta=%.2f ratio=%.4f\n", sens.Delta, sens.Ratio)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	dataPaths := fs.String("data", "", "Comma-separated CSV paths or a directory")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)

	byRegion := map[int][]model.UsageRecord{}
	for _, p := range splitPaths(*dataPaths) {
		info, err := os.Stat(p)
		if err != nil {
			log.WithError(err).Fatal("stat data path")
		}
		if info.IsDir() {
			entries, err := os.ReadDir(p)
			if err != nil {
				log.WithError(err).Fatal("read data dir")
			}
			for _, e := range entries {
				if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
					continue
				}
				mergeRecords(byRegion, filepath.Join(p, e.Name()))
			}
		} else {
			mergeRecords(byRegion, p)
		}
	}

	ranked, err := analysis.RankBySavings(byRegion, cfg.Premium, cfg.Search.Steps)
	if err != nil {
		log.WithError(err).Fatal("ranking failed")
	}

	fmt.Printf("%-4s %-8s %-8s %-10s %-10s %-12s %-12s\n", "rank", "region", "hours", "p95-p05", "peak", "level", "savings")
	for i, r := range ranked {
		fmt.Printf("%-4d %-8d %-8d %-10.2f %-10.2f %-12.4f %-12.2f\n",
			i+1, r.Region, r.Count, r.P95Usage-r.P05Usage, r.MaxUsage, r.OptimalLevel, r.Savings)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	return cfg
}

func loadSeries(path string, cfg *config.Config) model.DemandSeries {
	if path == "" {
		fmt.Println("--data is required")
		os.Exit(2)
	}
	records, err := dataset.LoadRecordsCSV(path)
	if err != nil {
		log.WithError(err).Fatal("load dataset")
	}
	series := dataset.Aggregate(records)
	if cfg.NormalizeCeiling > 0 {
		series, err = dataset.Normalize(series, cfg.NormalizeCeiling)
		if err != nil {
			log.WithError(err).Fatal("normalize series")
		}
	}
	return series
}

func mergeRecords(byRegion map[int][]model.UsageRecord, path string) {
	records, err := dataset.LoadRecordsCSV(path)
	if err != nil {
		log.WithError(err).Fatal("load dataset")
	}
	for region, recs := range dataset.GroupByRegion(records) {
		byRegion[region] = append(byRegion[region], recs...)
	}
}

// flagPassed reports whether the flag was set on the command line.
func flagPassed(fs *flag.FlagSet, name string) bool {
	passed := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
