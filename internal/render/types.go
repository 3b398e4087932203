// Package render is the boundary between a playback session and whatever
// paints it. A Driver receives fully composed frames; it never reads the
// engine.
package render

import (
	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/viz"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

// Frame is one engine frame decorated with everything a painter needs.
type Frame struct {
	Visualizer string          `json:"visualizer"`
	Index      int             `json:"index"`
	Total      int             `json:"total"`
	State      playback.State  `json:"state"`
	Speed      float64         `json:"speed"`
	Caption    string          `json:"caption"`
	Lines      []string        `json:"lines,omitempty"`
	Step       any             `json:"step"`
	Theme      vizutil.Palette `json:"theme"`
	Surface    vizutil.Size    `json:"surface"`
}

// Driver paints frames. Write may be called from the engine's timer goroutine.
type Driver interface {
	Write(f Frame) error
	Close() error
}

// Compose builds a Frame from an engine frame. The palette is looked up per
// call so theme changes show on the next paint.
func Compose(name string, f playback.Frame[any], theme vizutil.ThemeSource, size vizutil.Size) Frame {
	return Frame{
		Visualizer: name,
		Index:      f.Index,
		Total:      f.Total,
		State:      f.State,
		Speed:      f.Speed,
		Caption:    viz.Caption(f.Step),
		Lines:      viz.Lines(f.Step),
		Step:       f.Step,
		Theme:      vizutil.Lookup(theme),
		Surface:    size,
	}
}

// Progress is "index+1/total", the counter every surface shows.
func (f Frame) Progress() (int, int) {
	if f.Total == 0 {
		return 0, 0
	}
	return f.Index + 1, f.Total
}
