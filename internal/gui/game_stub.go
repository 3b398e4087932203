//go:build !ebiten

package gui

import (
	"fmt"
	"time"

	"github.com/coreman2200/stepviz/internal/app"
	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/render"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(*vizutil.AmbientTheme, int, float64) *Game {
	panic("gui.New requires building with the 'ebiten' tag")
}

func (g *Game) Theme() *vizutil.AmbientTheme                  { return nil }
func (g *Game) Attach(playback.Controller, playback.Controls) {}
func (g *Game) Bind(*app.Session, time.Duration)              {}
func (g *Game) Write(render.Frame) error                      { return nil }
func (g *Game) Close() error                                  { return nil }

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error {
	return fmt.Errorf("gui.Game.Update requires building with the 'ebiten' tag")
}
