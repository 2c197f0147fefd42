// Command sweep generates heightmaps for a range of seeds in parallel and
// reports which seeds produce the most relief.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"go.uber.org/zap"

	"terragen/internal/config"
	_ "terragen/internal/generators/cluster"
	_ "terragen/internal/generators/noise"
	_ "terragen/internal/generators/plates"
	"terragen/internal/observe"
)

func main() {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	from := fs.Int64("from", 1, "first seed")
	count := fs.Int("count", 64, "number of consecutive seeds")
	workers := fs.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := fs.Int("top", 10, "number of results to print")
	run, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := observe.NewLogger(run.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	params, err := run.GeneratorParams()
	if err != nil {
		log.Fatal("invalid parameters", zap.Error(err))
	}
	if _, ok := params["seed"]; ok {
		log.Warn("seed parameter is replaced by the sweep range")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	metrics := observe.NewMetrics("terragen_sweep")
	obs := observe.Multi(observe.Logger(log), metrics)

	fmt.Printf("Sweeping %s over %d seeds from %d (%d workers)\n", run.Generator, *count, *from, *workers)
	start := time.Now()
	results := runSweep(ctx, run.Generator, params, seedRange(*from, *count), *workers, obs)
	elapsed := time.Since(start)

	var failed, flat int
	for _, res := range results {
		switch {
		case res.err != nil:
			failed++
			metrics.RecordInvalid(run.Generator)
			log.Error("seed failed", zap.Int64("seed", res.seed), zap.Error(res.err))
		case res.degenerate:
			flat++
		}
	}

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(results)), elapsed.Round(time.Millisecond))
	shown := 0
	for _, res := range results {
		if shown >= *top {
			break
		}
		if res.err != nil {
			continue
		}
		shown++
		fmt.Printf("%2d) seed=%d stddev=%.4f mean=%.4f land=%.2f%% time=%s\n",
			shown, res.seed, res.stats.StdDev, res.stats.Mean, 100*res.stats.AboveLevel, res.elapsed.Round(time.Microsecond))
	}
	fmt.Printf("\nTotals: %d generated, %d flat, %d failed\n", len(results)-failed, flat, failed)

	if run.MetricsOut != "" {
		if err := metrics.WriteTextfile(run.MetricsOut); err != nil {
			log.Error("cannot write metrics", zap.String("path", run.MetricsOut), zap.Error(err))
		}
	}
	if ctx.Err() != nil {
		log.Warn("sweep interrupted", zap.Int("completed", len(results)), zap.Int("requested", *count))
	}
}
