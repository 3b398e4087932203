package fake

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/stepviz/internal/render"
)

// Driver records every frame and logs a one-line summary, useful for headless
// runs and tests.
type Driver struct {
	mu     sync.Mutex
	frames []render.Frame
	closed bool
	Quiet  bool
}

func (d *Driver) Write(f render.Frame) error {
	d.mu.Lock()
	d.frames = append(d.frames, f)
	n := len(d.frames)
	d.mu.Unlock()

	if !d.Quiet {
		at, total := f.Progress()
		log.Info().
			Str("viz", f.Visualizer).
			Int("frame", n).
			Int("step", at).
			Int("of", total).
			Str("state", string(f.State)).
			Msg(f.Caption)
	}
	return nil
}

func (d *Driver) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}

// Frames returns a copy of everything written so far.
func (d *Driver) Frames() []render.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]render.Frame(nil), d.frames...)
}

func (d *Driver) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}

// Last returns the most recent frame.
func (d *Driver) Last() (render.Frame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return render.Frame{}, false
	}
	return d.frames[len(d.frames)-1], true
}

func (d *Driver) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
