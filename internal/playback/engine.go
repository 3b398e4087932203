// Package playback drives a precomputed step sequence through a small state
// machine: idle -> ready -> running <-> paused -> finished, with reset valid
// from anywhere.
//
// Hooks run on whichever goroutine ticks the engine (the timer goroutine or the
// caller of Reset/StepOnce/Redraw). Inside a hook, only Advance, Finish,
// SetSpeed and the read accessors may be called.
package playback

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Engine owns the step sequence, the cursor and the single pending timer.
type Engine[S any] struct {
	// tickMu serializes ticks, paints and the cancelling verbs.
	tickMu sync.Mutex
	mu     sync.Mutex

	state    State
	steps    []S
	pos      int
	speed    float64
	interval time.Duration
	controls Controls
	clock    Clock

	// gen invalidates callbacks armed before the last cancel.
	gen   uint64
	timer Timer

	hooks  Hooks[S]
	logger zerolog.Logger
}

// New builds an idle engine and attaches it to surface, if any.
func New[S any](surface ControlSurface, opts Options) *Engine[S] {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = WallClock()
	}
	e := &Engine[S]{
		state:    Idle,
		speed:    clampSpeed(opts.Speed),
		interval: opts.Interval,
		controls: opts.Controls,
		clock:    opts.Clock,
		logger:   log.With().Str("component", "playback").Logger(),
	}
	if surface != nil {
		surface.Attach(e, opts.Controls)
	}
	return e
}

// OnReset registers the step generator.
func (e *Engine[S]) OnReset(gen func() []S) {
	e.mu.Lock()
	e.hooks.Reset = gen
	e.mu.Unlock()
}

// OnStep registers the advancer. With none registered the engine uses Advance.
func (e *Engine[S]) OnStep(adv func() bool) {
	e.mu.Lock()
	e.hooks.Step = adv
	e.mu.Unlock()
}

// OnRender registers the painter.
func (e *Engine[S]) OnRender(paint func(Frame[S])) {
	e.mu.Lock()
	e.hooks.Render = paint
	e.mu.Unlock()
}

// OnFinish registers the finish observer. It runs after the state is
// Finished, outside the engine's locks, on the goroutine that finished.
func (e *Engine[S]) OnFinish(done func()) {
	e.mu.Lock()
	e.hooks.Finish = done
	e.mu.Unlock()
}

// Controls reports the control set the engine was built with.
func (e *Engine[S]) Controls() Controls { return e.controls }

// Reset cancels any pending tick, regenerates the sequence and renders
// position 0. Without a generator an existing sequence is rewound; with no
// sequence at all the engine stays idle.
func (e *Engine[S]) Reset() {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	e.mu.Lock()
	e.cancelLocked()
	gen := e.hooks.Reset
	e.mu.Unlock()

	var steps []S
	if gen != nil {
		steps = gen()
	}

	e.mu.Lock()
	if gen != nil {
		e.steps = steps
	}
	e.pos = 0
	if len(e.steps) == 0 {
		e.steps = nil
		e.state = Idle
		e.mu.Unlock()
		e.logger.Debug().Bool("generator", gen != nil).Msg("reset without a step sequence")
		return
	}
	e.state = Ready
	n := len(e.steps)
	e.mu.Unlock()

	e.logger.Debug().Int("steps", n).Msg("reset")
	e.render()
}

// Play arms the timer. No-op when running, idle or finished.
func (e *Engine[S]) Play() {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case Running, Idle, Finished:
		return
	}
	e.state = Running
	e.armLocked()
	e.logger.Debug().Int("position", e.pos).Float64("speed", e.speed).Msg("play")
}

// Pause stops automatic advancing and keeps the position.
func (e *Engine[S]) Pause() {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Running {
		return
	}
	e.cancelLocked()
	e.state = Paused
	e.logger.Debug().Int("position", e.pos).Msg("pause")
}

// StepOnce performs one tick synchronously. It neither arms nor disarms the
// timer, except through the finish transition.
func (e *Engine[S]) StepOnce() {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	e.tick()
}

// Finish is the explicit terminal transition. Safe inside hooks.
func (e *Engine[S]) Finish() {
	e.mu.Lock()
	if e.state == Finished {
		e.mu.Unlock()
		return
	}
	e.cancelLocked()
	e.state = Finished
	pos := e.pos
	done := e.hooks.Finish
	e.mu.Unlock()

	e.logger.Debug().Int("position", pos).Msg("finished")
	if done != nil {
		done()
	}
}

// SetSpeed changes the multiplier. A running engine picks it up when the
// next tick is armed. Safe inside hooks.
func (e *Engine[S]) SetSpeed(multiplier float64) {
	e.mu.Lock()
	e.speed = clampSpeed(multiplier)
	e.mu.Unlock()
}

// Redraw re-renders the current position without touching state. Theme and
// resize events land here.
func (e *Engine[S]) Redraw() {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	e.render()
}

// Advance moves the cursor forward by one. It reports false at the last
// step. Safe inside hooks; this is the only way the cursor moves forward.
func (e *Engine[S]) Advance() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pos+1 >= len(e.steps) {
		return false
	}
	e.pos++
	return true
}

// Status returns a consistent copy of the externally visible state.
func (e *Engine[S]) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{State: e.state, Position: e.pos, Length: len(e.steps), Speed: e.speed}
}

// State is the current lifecycle phase.
func (e *Engine[S]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Position is the cursor index into the sequence.
func (e *Engine[S]) Position() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

// Len is the length of the current sequence.
func (e *Engine[S]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.steps)
}

// At returns the snapshot at index i without moving the cursor.
func (e *Engine[S]) At(i int) (S, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var zero S
	if i < 0 || i >= len(e.steps) {
		return zero, false
	}
	return e.steps[i], true
}

// tick runs the advancer then renders. Callers hold tickMu.
func (e *Engine[S]) tick() bool {
	e.mu.Lock()
	if e.state == Idle || e.state == Finished || len(e.steps) == 0 {
		e.mu.Unlock()
		return false
	}
	advance := e.hooks.Step
	e.mu.Unlock()

	if advance == nil {
		advance = e.Advance
	}
	if !advance() {
		e.Finish()
		return false
	}
	e.render()
	// the advancer may have finished the run itself
	return e.State() != Finished
}

// fire is the timer callback for generation gen.
func (e *Engine[S]) fire(gen uint64) {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	e.mu.Lock()
	if gen != e.gen || e.state != Running {
		e.mu.Unlock()
		return
	}
	e.timer = nil
	e.mu.Unlock()

	if !e.tick() {
		return
	}

	e.mu.Lock()
	if gen == e.gen && e.state == Running {
		e.armLocked()
	}
	e.mu.Unlock()
}

func (e *Engine[S]) render() {
	e.mu.Lock()
	paint := e.hooks.Render
	if paint == nil || len(e.steps) == 0 {
		e.mu.Unlock()
		return
	}
	f := Frame[S]{
		Index: e.pos,
		Total: len(e.steps),
		State: e.state,
		Speed: e.speed,
		Step:  e.steps[e.pos],
	}
	e.mu.Unlock()
	paint(f)
}

func (e *Engine[S]) armLocked() {
	gen := e.gen
	e.timer = e.clock.AfterFunc(e.intervalLocked(), func() { e.fire(gen) })
}

func (e *Engine[S]) cancelLocked() {
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine[S]) intervalLocked() time.Duration {
	return time.Duration(float64(e.interval) / e.speed)
}

func clampSpeed(m float64) float64 {
	if math.IsNaN(m) || m <= 0 {
		return 1
	}
	if m < MinSpeed {
		return MinSpeed
	}
	if m > MaxSpeed {
		return MaxSpeed
	}
	return m
}
