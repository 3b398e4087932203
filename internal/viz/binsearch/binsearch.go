// Package binsearch steps through binary search over a sorted list.
package binsearch

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/viz"
)

// MaxValues caps the input list.
const MaxValues = 64

// Mark classifies one cell of the list.
type Mark string

const (
	Eliminated Mark = "eliminated"
	InRange    Mark = "in-range"
	Mid        Mark = "mid"
	Hit        Mark = "found"
)

// Phase names what a snapshot shows.
type Phase string

const (
	Start    Phase = "start"
	Compare  Phase = "compare"
	Update   Phase = "update"
	Found    Phase = "found"
	NotFound Phase = "not-found"
	Empty    Phase = "empty"
)

// Step is one snapshot. Mid is -1 when no midpoint is under evaluation.
type Step struct {
	Phase       Phase  `json:"phase"`
	Values      []int  `json:"values"`
	Marks       []Mark `json:"marks"`
	Target      int    `json:"target"`
	Lo          int    `json:"lo"`
	Hi          int    `json:"hi"`
	Mid         int    `json:"mid"`
	Comparisons int    `json:"comparisons"`
	Message     string `json:"message"`
}

func (s Step) Caption() string { return s.Message }

func (s Step) Lines() []string {
	var b strings.Builder
	for i, v := range s.Values {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch s.Marks[i] {
		case Eliminated:
			b.WriteString(strings.Repeat(".", len(fmt.Sprint(v))))
		case Mid:
			fmt.Fprintf(&b, "[%d]", v)
		case Hit:
			fmt.Fprintf(&b, "*%d*", v)
		default:
			fmt.Fprint(&b, v)
		}
	}
	return []string{
		b.String(),
		fmt.Sprintf("lo=%d hi=%d mid=%d comparisons=%d", s.Lo, s.Hi, s.Mid, s.Comparisons),
		s.Message,
	}
}

// Steps searches for target in values. values is copied and sorted first.
func Steps(values []int, target int) []Step {
	if len(values) == 0 {
		return []Step{{Phase: Empty, Mid: -1, Hi: -1, Target: target, Message: "Nothing to search"}}
	}
	if len(values) > MaxValues {
		values = values[:MaxValues]
	}
	a := append([]int(nil), values...)
	sort.Ints(a)

	lo, hi := 0, len(a)-1
	comparisons := 0
	out := []Step{snap(Start, a, target, lo, hi, -1, comparisons,
		fmt.Sprintf("Searching for %d in %d sorted values", target, len(a)))}

	for lo <= hi {
		mid := (lo + hi) / 2
		comparisons++
		v := a[mid]
		switch {
		case v == target:
			out = append(out, snap(Compare, a, target, lo, hi, mid, comparisons,
				fmt.Sprintf("Compare a[%d]=%d with %d", mid, v, target)))
			out = append(out, snap(Found, a, target, lo, hi, mid, comparisons,
				fmt.Sprintf("Found %d at index %d after %d comparisons", target, mid, comparisons)))
			return out
		case v < target:
			out = append(out, snap(Compare, a, target, lo, hi, mid, comparisons,
				fmt.Sprintf("a[%d]=%d < %d, discard the left half", mid, v, target)))
			lo = mid + 1
		default:
			out = append(out, snap(Compare, a, target, lo, hi, mid, comparisons,
				fmt.Sprintf("a[%d]=%d > %d, discard the right half", mid, v, target)))
			hi = mid - 1
		}
		out = append(out, snap(Update, a, target, lo, hi, -1, comparisons,
			fmt.Sprintf("Bounds now lo=%d hi=%d", lo, hi)))
	}
	out = append(out, snap(NotFound, a, target, lo, hi, -1, comparisons,
		fmt.Sprintf("%d not found after %d comparisons", target, comparisons)))
	return out
}

func snap(phase Phase, a []int, target, lo, hi, mid, comparisons int, msg string) Step {
	marks := make([]Mark, len(a))
	for i := range a {
		switch {
		case phase == Found && i == mid:
			marks[i] = Hit
		case i == mid:
			marks[i] = Mid
		case phase == NotFound || i < lo || i > hi:
			marks[i] = Eliminated
		default:
			marks[i] = InRange
		}
	}
	return Step{
		Phase:       phase,
		Values:      append([]int(nil), a...),
		Marks:       marks,
		Target:      target,
		Lo:          lo,
		Hi:          hi,
		Mid:         mid,
		Comparisons: comparisons,
		Message:     msg,
	}
}

func init() {
	viz.Register(viz.Visualizer{
		Name:    "binary-search",
		Title:   "Binary Search",
		Topic:   "search",
		Summary: "halve a sorted range until the target is found or the range is empty",
		Params: []viz.ParamSpec{
			{Key: "values", Label: "Values", Default: "2,5,8,12,16,23,38,56,72,91", Help: "sorted before searching"},
			{Key: "target", Label: "Target", Default: "23"},
		},
		Controls: playback.DefaultControls(),
		Steps: viz.Erase(func(p viz.Params) []Step {
			return Steps(p.Ints("values", ""), p.Int("target", 0, math.MinInt, math.MaxInt))
		}),
	})
}
