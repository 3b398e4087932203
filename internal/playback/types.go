package playback

import "time"

// State enumerates engine lifecycle phases.
type State string

const (
	Idle     State = "idle"
	Ready    State = "ready"
	Running  State = "running"
	Paused   State = "paused"
	Finished State = "finished"
)

// Controls toggles which playback controls a surface should expose.
type Controls struct {
	Play  bool `json:"play" yaml:"play"`
	Speed bool `json:"speed" yaml:"speed"`
	Step  bool `json:"step" yaml:"step"`
}

// DefaultControls enables every control.
func DefaultControls() Controls {
	return Controls{Play: true, Speed: true, Step: true}
}

// Status is the read-only view a control surface reflects.
type Status struct {
	State    State   `json:"state"`
	Position int     `json:"position"`
	Length   int     `json:"length"`
	Speed    float64 `json:"speed"`
}

// Frame is handed to the render hook: one snapshot plus where it sits.
type Frame[S any] struct {
	Index int
	Total int
	State State
	Speed float64
	Step  S
}

// Controller is the verb set a control surface may call.
type Controller interface {
	Reset()
	Play()
	Pause()
	StepOnce()
	Finish()
	SetSpeed(multiplier float64)
	Redraw()
	Status() Status
}

// ControlSurface is the binding target handed to New. Attach is called once.
type ControlSurface interface {
	Attach(c Controller, controls Controls)
}

// Options configures an Engine. Zero values fall back to defaults, except
// Controls which is taken as given; start from DefaultOptions.
type Options struct {
	Controls Controls
	// Interval between automatic ticks at speed 1.
	Interval time.Duration
	Speed    float64
	Clock    Clock
}

const (
	DefaultInterval = 600 * time.Millisecond
	MinSpeed        = 0.25
	MaxSpeed        = 8.0
)

// DefaultOptions returns all controls enabled at speed 1 on the wall clock.
func DefaultOptions() Options {
	return Options{
		Controls: DefaultControls(),
		Interval: DefaultInterval,
		Speed:    1,
		Clock:    WallClock(),
	}
}

// Hooks are the collaborator slots. At most one of each; last write wins.
type Hooks[S any] struct {
	// Reset rebuilds the step sequence from the visualizer's current inputs.
	Reset func() []S
	// Step advances the cursor; false means no further step is possible.
	Step func() bool
	// Render paints one frame.
	Render func(Frame[S])
	// Finish observes every transition into Finished, whoever caused it.
	Finish func()
}
