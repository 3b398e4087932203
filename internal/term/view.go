// Package term paints a playback session into a terminal with tcell and maps
// keys onto the engine's controls.
package term

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/stepviz/internal/app"
	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/render"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

const help = "space play/pause  n step  r reset  +/- speed  t theme  q quit"

// View is a render driver and control surface over one tcell screen.
type View struct {
	screen tcell.Screen
	theme  *vizutil.AmbientTheme

	ctrl     playback.Controller
	controls playback.Controls

	sess         *app.Session
	redraw       func()
	cancelRedraw func()

	drawMu sync.Mutex

	mu     sync.Mutex
	last   render.Frame
	have   bool
	notice string
}

func New(screen tcell.Screen, theme *vizutil.AmbientTheme) *View {
	if theme == nil {
		theme = vizutil.NewAmbientTheme(vizutil.Dark)
	}
	return &View{screen: screen, theme: theme, redraw: func() {}, cancelRedraw: func() {}}
}

func (v *View) Theme() *vizutil.AmbientTheme { return v.theme }

func (v *View) Attach(c playback.Controller, controls playback.Controls) {
	v.ctrl = c
	v.controls = controls
}

// Bind hooks the view to its session and sets up the debounced resize redraw.
func (v *View) Bind(s *app.Session, quiet time.Duration) {
	v.sess = s
	v.redraw, v.cancelRedraw = vizutil.Debounce(s.Engine.Redraw, quiet)
	w, h := v.screen.Size()
	s.SetSize(vizutil.Size{W: w, H: h})
}

func (v *View) Write(f render.Frame) error {
	v.mu.Lock()
	v.last = f
	v.have = true
	v.mu.Unlock()
	v.draw()
	return nil
}

func (v *View) Close() error {
	v.cancelRedraw()
	return nil
}

// Last returns the most recently painted frame.
func (v *View) Last() (render.Frame, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.last, v.have
}

// Notice is the transient message on the footer line.
func (v *View) Notice() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notice
}

func (v *View) setNotice(s string) {
	v.mu.Lock()
	v.notice = s
	v.mu.Unlock()
}

// HandleEvent applies one terminal event. It reports false when the user
// asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		v.screen.Sync()
		if v.sess != nil {
			v.sess.SetSize(vizutil.Size{W: w, H: h})
		}
		v.redraw()
	}
	return true
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	a := app.None
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a = app.Quit
	case tcell.KeyRune:
		a = app.ActionForRune(ev.Rune())
	}
	switch a {
	case app.None:
		return true
	case app.Quit:
		return false
	}

	v.setNotice("")
	notice := app.Perform(a, v.ctrl, v.controls, v.theme)
	if notice != "" {
		log.Debug().Str("action", a.String()).Msg(notice)
	}
	v.setNotice(notice)
	if a != app.ToggleTheme {
		v.draw()
	}
	return true
}

// Run pumps terminal events until quit or ctx is done.
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	v.ctrl.Reset()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.HandleEvent(ev) {
				return nil
			}
		}
	}
}

func (v *View) draw() {
	v.mu.Lock()
	f, have, notice := v.last, v.have, v.notice
	v.mu.Unlock()

	v.drawMu.Lock()
	defer v.drawMu.Unlock()

	pal := vizutil.Lookup(v.theme)
	if have {
		pal = f.Theme
	}
	base := tcell.StyleDefault.
		Foreground(tcell.GetColor(pal.Foreground)).
		Background(tcell.GetColor(pal.Background))
	accent := base.Foreground(tcell.GetColor(pal.Accent)).Bold(true)
	muted := base.Foreground(tcell.GetColor(pal.Muted))

	v.screen.SetStyle(base)
	v.screen.Clear()
	w, h := v.screen.Size()

	title := ""
	if v.sess != nil {
		title = v.sess.Viz.Title
	}
	putString(v.screen, 0, 0, w, title, accent)
	if have {
		at, total := f.Progress()
		putString(v.screen, 0, 1, w, fmt.Sprintf("step %d/%d  %s  x%.2g", at, total, f.State, f.Speed), muted)
		for i, line := range f.Lines {
			y := 3 + i
			if y >= h-2 {
				break
			}
			putString(v.screen, 0, y, w, line, base)
		}
	}
	if notice != "" {
		putString(v.screen, 0, h-2, w, notice, accent)
	}
	putString(v.screen, 0, h-1, w, help, muted)
	v.screen.Show()
}

func putString(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= maxW {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
