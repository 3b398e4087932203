package app

import (
	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

// Action is a surface-independent user intent. Keyboard front-ends share one
// layout through ActionForRune.
type Action int

const (
	None Action = iota
	TogglePlay
	StepOnce
	Reset
	Faster
	Slower
	ToggleTheme
	Quit
)

func (a Action) String() string {
	switch a {
	case TogglePlay:
		return "play"
	case StepOnce:
		return "step"
	case Reset:
		return "reset"
	case Faster, Slower:
		return "speed"
	case ToggleTheme:
		return "theme"
	case Quit:
		return "quit"
	}
	return "none"
}

// ActionForRune maps the shared key layout.
func ActionForRune(r rune) Action {
	switch r {
	case ' ':
		return TogglePlay
	case 'n':
		return StepOnce
	case 'r':
		return Reset
	case '+', '=':
		return Faster
	case '-', '_':
		return Slower
	case 't':
		return ToggleTheme
	case 'q':
		return Quit
	}
	return None
}

// Perform applies a to ctrl. A control the visualizer disabled is refused
// and reported through the returned notice.
func Perform(a Action, ctrl playback.Controller, controls playback.Controls, theme *vizutil.AmbientTheme) (notice string) {
	if !enabled(a, controls) {
		return a.String() + " is disabled for this visualizer"
	}
	switch a {
	case TogglePlay:
		if ctrl.Status().State == playback.Running {
			ctrl.Pause()
		} else {
			ctrl.Play()
		}
	case StepOnce:
		ctrl.StepOnce()
	case Reset:
		ctrl.Reset()
	case Faster:
		ctrl.SetSpeed(ctrl.Status().Speed * 2)
	case Slower:
		ctrl.SetSpeed(ctrl.Status().Speed / 2)
	case ToggleTheme:
		theme.Toggle()
		ctrl.Redraw()
	}
	return ""
}

func enabled(a Action, c playback.Controls) bool {
	switch a {
	case TogglePlay:
		return c.Play
	case StepOnce:
		return c.Step
	case Faster, Slower:
		return c.Speed
	}
	return true
}
