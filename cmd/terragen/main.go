// Command terragen generates one heightmap and writes it as a PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"

	"go.uber.org/zap"

	"terragen/internal/config"
	"terragen/internal/core"
	_ "terragen/internal/generators/cluster"
	_ "terragen/internal/generators/noise"
	"terragen/internal/generators/plates"
	"terragen/internal/observe"
	"terragen/internal/render"
)

func main() {
	fs := flag.NewFlagSet("terragen", flag.ExitOnError)
	list := fs.Bool("list", false, "print the registered generators with their default parameters and exit")
	pngScale := fs.Int("png-scale", 1, "integer upscaling factor for the exported image")
	boundaries := fs.Bool("boundaries", false, "draw plate boundaries over plate heightmaps")
	run, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *list {
		if err := printGenerators(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	log, err := observe.NewLogger(run.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	metrics := observe.NewMetrics("terragen")
	defer writeMetrics(log, metrics, run.MetricsOut)

	params, err := run.GeneratorParams()
	if err != nil {
		log.Fatal("invalid parameters", zap.Error(err))
	}
	gen, err := core.New(run.Generator, params, observe.Multi(observe.Logger(log), metrics))
	if err != nil {
		metrics.RecordInvalid(run.Generator)
		writeMetrics(log, metrics, run.MetricsOut)
		log.Fatal("cannot build generator", zap.String("generator", run.Generator), zap.Error(err))
	}
	if p, ok := gen.(interface{ Parameters() core.ParameterSnapshot }); ok {
		if unknown := config.UnknownKeys(params, p.Parameters().Values()); len(unknown) > 0 {
			log.Warn("ignoring unknown parameters", zap.Strings("keys", unknown))
		}
	}

	h, mask, err := generate(gen, *boundaries)
	switch {
	case errors.Is(err, core.ErrDegenerateField):
		log.Warn("heightmap is flat; exporting zeros", zap.Error(err))
	case err != nil:
		log.Fatal("generation failed", zap.Error(err))
	}

	stats := core.Summarize(h, render.SeaLevel)
	log.Info("summary",
		zap.String("generator", gen.Name()),
		zap.Int64("seed", gen.Seed()),
		zap.Int("size", gen.Size()),
		zap.Float64("min", stats.Min),
		zap.Float64("max", stats.Max),
		zap.Float64("mean", stats.Mean),
		zap.Float64("stddev", stats.StdDev),
		zap.Float64("land_fraction", stats.AboveLevel),
	)

	if run.Output == "" {
		return
	}
	palette, err := render.ParsePalette(run.Palette)
	if err != nil {
		log.Fatal("invalid palette", zap.Error(err))
	}
	img := render.Image(h, palette)
	if mask != nil {
		render.Composite(img, render.MaskImage(mask, color.RGBA{R: 200, G: 40, B: 40, A: 255}))
	}
	if err := render.SavePNG(run.Output, render.Scale(img, *pngScale)); err != nil {
		log.Fatal("export failed", zap.Error(err))
	}
	log.Info("wrote heightmap", zap.String("path", run.Output))
}

// generate runs gen. For plate generators with withBoundaries set it also
// returns the boundary mask.
func generate(gen core.Generator, withBoundaries bool) (*core.Heightmap, *core.Mask, error) {
	if p, ok := gen.(*plates.Generator); ok && withBoundaries {
		t, err := p.Tectonics()
		return t.Heightmap, t.Boundaries, err
	}
	h, err := gen.Generate()
	return h, nil, err
}

func writeMetrics(log *zap.Logger, metrics *observe.Metrics, path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		log.Error("cannot write metrics", zap.String("path", path), zap.Error(err))
	}
}

func printGenerators(w io.Writer) error {
	for _, name := range core.Names() {
		gen, err := core.New(name, nil, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", name)
		p, ok := gen.(interface{ Parameters() core.ParameterSnapshot })
		if !ok {
			continue
		}
		for _, group := range p.Parameters().Groups {
			fmt.Fprintf(w, "  %s\n", group.Name)
			for _, param := range group.Params {
				if param.Key == "seed" {
					fmt.Fprintf(w, "    %-18s (random)\n", param.Key)
					continue
				}
				fmt.Fprintf(w, "    %-18s %s\n", param.Key, param.Value)
			}
		}
	}
	return nil
}
