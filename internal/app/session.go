// Package app binds one visualizer, one playback engine and one render
// driver into a session. Every front-end builds its sessions here.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/render"
	"github.com/coreman2200/stepviz/internal/viz"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

type Options struct {
	Playback playback.Options
	// Params override the visualizer defaults.
	Params map[string]string
	Theme  vizutil.ThemeSource
	// Surface, if set, is attached to the engine.
	Surface playback.ControlSurface
	Size    vizutil.Size
}

type Session struct {
	Viz      viz.Visualizer
	Engine   *playback.Engine[any]
	Controls playback.Controls

	drv   render.Driver
	theme vizutil.ThemeSource

	mu     sync.Mutex
	params viz.Params
	size   vizutil.Size
	done   chan struct{}
	ended  bool

	logger zerolog.Logger
}

// NewSession looks up name and wires a fresh engine to drv. The session is
// idle until Reset.
func NewSession(name string, drv render.Driver, opts Options) (*Session, error) {
	v, ok := viz.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown visualizer %q", name)
	}
	if opts.Theme == nil {
		opts.Theme = vizutil.NewAmbientTheme(vizutil.Light)
	}
	controls := Intersect(v.Controls, opts.Playback.Controls)
	opts.Playback.Controls = controls

	s := &Session{
		Viz:      v,
		Controls: controls,
		drv:      drv,
		theme:    opts.Theme,
		params:   viz.Params(opts.Params).With(nil),
		size:     opts.Size,
		done:     make(chan struct{}),
		logger:   log.With().Str("component", "session").Str("viz", name).Logger(),
	}
	e := playback.New[any](opts.Surface, opts.Playback)
	e.OnReset(s.generate)
	e.OnFinish(s.finished)
	e.OnRender(s.paint)
	s.Engine = e
	return s, nil
}

// Intersect keeps a control only when both sides enable it.
func Intersect(a, b playback.Controls) playback.Controls {
	return playback.Controls{
		Play:  a.Play && b.Play,
		Speed: a.Speed && b.Speed,
		Step:  a.Step && b.Step,
	}
}

func (s *Session) generate() []any {
	s.mu.Lock()
	p := s.params
	if s.ended {
		s.done = make(chan struct{})
		s.ended = false
	}
	s.mu.Unlock()

	steps := s.Viz.Generate(p)
	s.logger.Debug().Int("steps", len(steps)).Msg("generated")
	return steps
}

// finished wakes Run. The engine is already Finished when it is called,
// whether the run ended on its own or through Finish.
func (s *Session) finished() {
	s.mu.Lock()
	if !s.ended {
		s.ended = true
		close(s.done)
	}
	s.mu.Unlock()
}

func (s *Session) paint(f playback.Frame[any]) {
	s.mu.Lock()
	size := s.size
	s.mu.Unlock()
	if err := s.drv.Write(render.Compose(s.Viz.Name, f, s.theme, size)); err != nil {
		s.logger.Warn().Err(err).Int("index", f.Index).Msg("driver write failed")
	}
}

// Snapshot composes the frame for step i without moving the cursor or
// touching the driver.
func (s *Session) Snapshot(i int) (render.Frame, bool) {
	step, ok := s.Engine.At(i)
	if !ok {
		return render.Frame{}, false
	}
	st := s.Engine.Status()
	f := playback.Frame[any]{
		Index: i,
		Total: st.Length,
		State: st.State,
		Speed: st.Speed,
		Step:  step,
	}
	return render.Compose(s.Viz.Name, f, s.theme, s.Size()), true
}

// Params returns the inputs the next Reset will generate from, defaults
// included.
func (s *Session) Params() viz.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Viz.Defaults().With(s.params)
}

// SetParams replaces the overrides and regenerates.
func (s *Session) SetParams(p map[string]string) {
	s.mu.Lock()
	s.params = viz.Params(p).With(nil)
	s.mu.Unlock()
	s.Engine.Reset()
}

// SetSize records the logical surface size used for subsequent paints.
func (s *Session) SetSize(size vizutil.Size) {
	s.mu.Lock()
	s.size = size
	s.mu.Unlock()
}

func (s *Session) Size() vizutil.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Done is closed when the current run finishes, at its last step or through
// Finish. Reset opens a new run.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Run resets, plays and blocks until the run ends or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.Engine.Reset()
	if s.Engine.State() == playback.Idle {
		return fmt.Errorf("%s: no steps to play", s.Viz.Name)
	}
	done := s.Done()
	s.Engine.Play()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.Engine.Pause()
		return ctx.Err()
	}
}

// Close stops playback and releases the driver.
func (s *Session) Close() error {
	s.Engine.Finish()
	return s.drv.Close()
}
