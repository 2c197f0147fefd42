//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"terragen/internal/app"
	"terragen/internal/config"
	_ "terragen/internal/generators/cluster"
	_ "terragen/internal/generators/noise"
	_ "terragen/internal/generators/plates"
	"terragen/internal/observe"
	"terragen/internal/render"
)

func main() {
	fs := flag.NewFlagSet("heightview", flag.ExitOnError)
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
	bench, err := app.NewWorkbench(run.Generator, params, observe.Logger(log))
	if err != nil {
		log.Fatal("cannot build generator", zap.Error(err))
	}
	palette, err := render.ParsePalette(run.Palette)
	if err != nil {
		log.Fatal("invalid palette", zap.Error(err))
	}

	game := app.New(bench, palette, run.Scale, log)
	if run.Path != "" {
		watcher, err := config.NewWatcher(run.Path, log)
		if err != nil {
			log.Warn("run file will not be reloaded", zap.Error(err))
		} else {
			defer watcher.Close()
			game.Watch(watcher.Updates(), run.Overrides)
		}
	}
	size := bench.Size()

	ebiten.SetWindowTitle("terragen: " + bench.Name())
	ebiten.SetTPS(run.TPS)
	ebiten.SetWindowSize(size*run.Scale+app.HUDWidth, size*run.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("viewer stopped", zap.Error(err))
	}
}
