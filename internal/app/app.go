//go:build ebiten

package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"terragen/internal/config"
	"terragen/internal/render"
	"terragen/internal/ui"
)

// HUDWidth is the width of the parameter panel in screen pixels.
const HUDWidth = 220

// Game adapts a Workbench to the ebiten.Game interface.
type Game struct {
	bench   *Workbench
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	log     *zap.Logger

	palette render.Palette
	scale   int

	reloads   <-chan *config.Run
	overrides []string
}

// New constructs a Game for the provided workbench.
func New(bench *Workbench, palette render.Palette, scale int, log *zap.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	size := bench.Size()
	return &Game{
		bench:   bench,
		painter: render.NewGridPainter(size, size),
		hud:     ui.NewHUD(bench, HUDWidth),
		overlay: ui.NewOverlay(scale),
		log:     log,
		palette: palette,
		scale:   scale,
	}
}

// Watch applies run files received on updates. overrides are -set flags that
// keep precedence over every reloaded file.
func (g *Game) Watch(updates <-chan *config.Run, overrides []string) {
	g.reloads = updates
	g.overrides = overrides
}

// Update handles keyboard input, automatic reseeding and HUD interaction.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.report("regenerate", g.bench.Regenerate())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.report("reseed", g.bench.ReseedRandom())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.report("switch generator", g.bench.NextGenerator())
		ebiten.SetWindowTitle("terragen: " + g.bench.Name())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.bench.SetAuto(!g.bench.Auto())
		g.log.Info("auto reseed", zap.Bool("enabled", g.bench.Auto()))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.palette == render.Terrain {
			g.palette = render.Gray
		} else {
			g.palette = render.Terrain
		}
	}
	select {
	case r, ok := <-g.reloads:
		if !ok {
			g.reloads = nil
			break
		}
		g.reload(r)
	default:
	}
	if _, err := g.bench.Tick(); err != nil {
		g.report("auto reseed", err)
	}

	g.overlay.Update()
	g.hud.Update(g.bench.Size() * g.scale)
	g.resize()
	return nil
}

// resize follows size changes made through the HUD.
func (g *Game) resize() {
	size := g.bench.Size()
	if w, _ := g.painter.Size(); w == size {
		return
	}
	g.painter = render.NewGridPainter(size, size)
	ebiten.SetWindowSize(size*g.scale+HUDWidth, size*g.scale)
}

func (g *Game) reload(r *config.Run) {
	r.Overrides = g.overrides
	params, err := r.GeneratorParams()
	if err == nil {
		err = g.bench.Apply(r.Generator, params)
	}
	if err == nil {
		if p, perr := render.ParsePalette(r.Palette); perr == nil {
			g.palette = p
		}
		ebiten.SetWindowTitle("terragen: " + g.bench.Name())
	}
	g.report("reload", err)
}

func (g *Game) report(action string, err error) {
	if err != nil {
		g.log.Warn(action+" failed", zap.Error(err))
		return
	}
	f := g.bench.Frame()
	fields := []zap.Field{
		zap.String("generator", g.bench.Name()),
		zap.Int64("seed", g.bench.Seed()),
		zap.Float64("stddev", f.Stats.StdDev),
	}
	if f.Degenerate {
		g.log.Warn("flat field", fields...)
		return
	}
	g.log.Debug(action, fields...)
}

// Draw renders the current heightmap, overlays and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.bench.Frame()
	g.painter.Blit(screen, f.Heightmap, g.palette, g.scale)
	g.overlay.Draw(screen, ui.Layers{Boundaries: f.Boundaries, Seeds: f.Seeds, Velocities: f.Velocities})
	g.hud.Draw(screen, g.bench.Size()*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.bench.Size()
	return size*g.scale + HUDWidth, size * g.scale
}
