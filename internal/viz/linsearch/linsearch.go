// Package linsearch steps through a left-to-right scan for a value.
package linsearch

import (
	"fmt"
	"math"
	"strings"

	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/viz"
)

const MaxValues = 64

type Phase string

const (
	Start    Phase = "start"
	Checking Phase = "checking"
	Found    Phase = "found"
	NotFound Phase = "not-found"
	Empty    Phase = "empty"
)

// Step is one snapshot. Index is the cell under inspection, -1 before the
// scan starts and after a miss.
type Step struct {
	Phase   Phase  `json:"phase"`
	Values  []int  `json:"values"`
	Target  int    `json:"target"`
	Index   int    `json:"index"`
	Checks  int    `json:"checks"`
	Message string `json:"message"`
}

func (s Step) Caption() string { return s.Message }

func (s Step) Lines() []string {
	cells := make([]string, len(s.Values))
	for i, v := range s.Values {
		switch {
		case i == s.Index && s.Phase == Found:
			cells[i] = fmt.Sprintf("*%d*", v)
		case i == s.Index:
			cells[i] = fmt.Sprintf("[%d]", v)
		default:
			cells[i] = fmt.Sprint(v)
		}
	}
	return []string{strings.Join(cells, " "), s.Message}
}

// Steps scans values for target, stopping at the first match.
func Steps(values []int, target int) []Step {
	if len(values) == 0 {
		return []Step{{Phase: Empty, Index: -1, Target: target, Message: "Nothing to search"}}
	}
	if len(values) > MaxValues {
		values = values[:MaxValues]
	}
	a := append([]int(nil), values...)
	out := []Step{snap(Start, a, target, -1, 0, fmt.Sprintf("Looking for %d", target))}
	for i, v := range a {
		out = append(out, snap(Checking, a, target, i, i+1, fmt.Sprintf("Checking index %d: %d", i, v)))
		if v == target {
			out = append(out, snap(Found, a, target, i, i+1, fmt.Sprintf("Found at index %d", i)))
			return out
		}
	}
	return append(out, snap(NotFound, a, target, -1, len(a), "Not found"))
}

func snap(phase Phase, a []int, target, idx, checks int, msg string) Step {
	return Step{
		Phase:   phase,
		Values:  append([]int(nil), a...),
		Target:  target,
		Index:   idx,
		Checks:  checks,
		Message: msg,
	}
}

func init() {
	viz.Register(viz.Visualizer{
		Name:    "linear-search",
		Title:   "Linear Search",
		Topic:   "search",
		Summary: "check every element in order until the target turns up",
		Params: []viz.ParamSpec{
			{Key: "values", Label: "Values", Default: "3,7,2,9"},
			{Key: "target", Label: "Target", Default: "7"},
		},
		Controls: playback.DefaultControls(),
		Steps: viz.Erase(func(p viz.Params) []Step {
			return Steps(p.Ints("values", ""), p.Int("target", 0, math.MinInt, math.MaxInt))
		}),
	})
}
