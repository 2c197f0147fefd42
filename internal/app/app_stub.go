//go:build !ebiten

package app

import (
	"fmt"

	"go.uber.org/zap"

	"terragen/internal/config"
	"terragen/internal/render"
)

// HUDWidth is the width of the parameter panel in screen pixels.
const HUDWidth = 220

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(*Workbench, render.Palette, int, *zap.Logger) *Game {
	panic("app.New requires building with the 'ebiten' tag")
}

// Watch is a no-op in the headless build.
func (g *Game) Watch(<-chan *config.Run, []string) {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error {
	return fmt.Errorf("app.Game.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
