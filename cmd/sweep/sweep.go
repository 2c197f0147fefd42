package main

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"terragen/internal/core"
	"terragen/internal/render"
)

type seedResult struct {
	seed       int64
	stats      core.Summary
	degenerate bool
	elapsed    time.Duration
	err        error
}

// runSweep generates one heightmap per seed on a pool of workers. Each job
// builds its own generator instance. Results are ordered by descending relief
// (standard deviation) and then by seed. Seeds not started before ctx is
// cancelled are omitted.
func runSweep(ctx context.Context, name string, params map[string]string, seeds []int64, workers int, obs core.Observer) []seedResult {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan int64)
	results := make(chan seedResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- runSeed(name, params, seed, obs)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, seed := range seeds {
			select {
			case jobs <- seed:
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []seedResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].stats.StdDev != all[j].stats.StdDev {
			return all[i].stats.StdDev > all[j].stats.StdDev
		}
		return all[i].seed < all[j].seed
	})
	return all
}

func runSeed(name string, params map[string]string, seed int64, obs core.Observer) seedResult {
	cfg := make(map[string]string, len(params)+1)
	for k, v := range params {
		cfg[k] = v
	}
	cfg["seed"] = strconv.FormatInt(seed, 10)

	start := time.Now()
	res := seedResult{seed: seed}
	gen, err := core.New(name, cfg, obs)
	if err != nil {
		res.err = err
		return res
	}
	h, err := gen.Generate()
	res.elapsed = time.Since(start)
	if err != nil && !errors.Is(err, core.ErrDegenerateField) {
		res.err = err
		return res
	}
	res.degenerate = err != nil
	res.stats = core.Summarize(h, render.SeaLevel)
	return res
}

// seedRange returns count consecutive seeds starting at from.
func seedRange(from int64, count int) []int64 {
	seeds := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		seeds = append(seeds, from+int64(i))
	}
	return seeds
}
