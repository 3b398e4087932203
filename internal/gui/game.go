//go:build ebiten

// Package gui paints a playback session into an ebiten window.
package gui

import (
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/coreman2200/stepviz/internal/app"
	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/render"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

const (
	lineHeight = 16
	padding    = 12
	help       = "space play/pause  n step  r reset  +/- speed  t theme  q quit"
)

// keys maps ebiten keys onto the shared key layout.
var keys = map[ebiten.Key]rune{
	ebiten.KeySpace:          ' ',
	ebiten.KeyN:              'n',
	ebiten.KeyR:              'r',
	ebiten.KeyEqual:          '+',
	ebiten.KeyNumpadAdd:      '+',
	ebiten.KeyMinus:          '-',
	ebiten.KeyNumpadSubtract: '-',
	ebiten.KeyT:              't',
	ebiten.KeyQ:              'q',
	ebiten.KeyEscape:         'q',
}

// Game adapts a playback session to the ebiten.Game interface. It is also the
// session's render driver and control surface.
type Game struct {
	theme *vizutil.AmbientTheme
	size  *sizer

	ctrl     playback.Controller
	controls playback.Controls

	sess         *app.Session
	redraw       func()
	cancelRedraw func()

	mu     sync.Mutex
	last   render.Frame
	have   bool
	notice string
}

func New(theme *vizutil.AmbientTheme, baseWidth int, aspect float64) *Game {
	if theme == nil {
		theme = vizutil.NewAmbientTheme(vizutil.Dark)
	}
	return &Game{
		theme:        theme,
		size:         newSizer(baseWidth, aspect),
		redraw:       func() {},
		cancelRedraw: func() {},
	}
}

func (g *Game) Theme() *vizutil.AmbientTheme { return g.theme }

func (g *Game) Attach(c playback.Controller, controls playback.Controls) {
	g.ctrl = c
	g.controls = controls
}

// Bind hooks the game to its session and resets it.
func (g *Game) Bind(s *app.Session, quiet time.Duration) {
	g.sess = s
	g.redraw, g.cancelRedraw = vizutil.Debounce(s.Engine.Redraw, quiet)
	s.Engine.Reset()
}

func (g *Game) Write(f render.Frame) error {
	g.mu.Lock()
	g.last = f
	g.have = true
	g.mu.Unlock()
	return nil
}

func (g *Game) Close() error {
	g.cancelRedraw()
	return nil
}

// Update handles input. Stepping itself runs on the engine's timer.
func (g *Game) Update() error {
	for k, r := range keys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		a := app.ActionForRune(r)
		if a == app.Quit {
			return ebiten.Termination
		}
		notice := app.Perform(a, g.ctrl, g.controls, g.theme)
		g.mu.Lock()
		g.notice = notice
		g.mu.Unlock()
	}
	return nil
}

// Draw renders the last frame the engine painted.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	f, have, notice := g.last, g.have, g.notice
	g.mu.Unlock()

	pal := vizutil.Lookup(g.theme)
	if have {
		pal = f.Theme
	}
	screen.Fill(rgb(pal.Background))
	face := basicfont.Face7x13

	title := ""
	if g.sess != nil {
		title = g.sess.Viz.Title
	}
	y := padding + lineHeight
	text.Draw(screen, title, face, padding, y, rgb(pal.Accent))
	if have {
		y += lineHeight
		at, total := f.Progress()
		text.Draw(screen, progress(at, total, f), face, padding, y, rgb(pal.Muted))
		y += lineHeight
		for _, line := range f.Lines {
			y += lineHeight
			text.Draw(screen, line, face, padding, y, rgb(pal.Foreground))
		}
	}
	h := screen.Bounds().Dy()
	if notice != "" {
		text.Draw(screen, notice, face, padding, h-padding-lineHeight, rgb(pal.Highlight))
	}
	text.Draw(screen, help, face, padding, h-padding, rgb(pal.Muted))
}

// Layout sizes the canvas for the window and the monitor's scale factor.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size, changed := g.size.update(outsideWidth, ebiten.DeviceScaleFactor())
	if changed && g.sess != nil {
		g.sess.SetSize(size)
		g.redraw()
	}
	return size.W, size.H
}

func rgb(hex string) color.Color {
	r, g, b, ok := vizutil.HexRGB(hex)
	if !ok {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
