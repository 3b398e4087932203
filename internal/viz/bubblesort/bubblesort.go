// Package bubblesort steps through bubble sort, one snapshot per comparison
// and per swap. Passes stop early once a pass makes no swap.
package bubblesort

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/viz"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

const MaxValues = 32

type Phase string

const (
	Start   Phase = "start"
	Compare Phase = "compare"
	Swap    Phase = "swap"
	Done    Phase = "done"
	Empty   Phase = "empty"
)

// Step is one snapshot. I and J are the pair under inspection; Sorted counts
// the settled tail.
type Step struct {
	Phase       Phase  `json:"phase"`
	Values      []int  `json:"values"`
	I           int    `json:"i"`
	J           int    `json:"j"`
	Pass        int    `json:"pass"`
	Sorted      int    `json:"sorted"`
	Comparisons int    `json:"comparisons"`
	Swaps       int    `json:"swaps"`
	Message     string `json:"message"`
}

func (s Step) Caption() string { return s.Message }

func (s Step) Lines() []string {
	cells := make([]string, len(s.Values))
	for k, v := range s.Values {
		c := strconv.Itoa(v)
		switch {
		case k >= len(s.Values)-s.Sorted:
			c = "(" + c + ")"
		case (s.Phase == Compare || s.Phase == Swap) && (k == s.I || k == s.J):
			c = "[" + c + "]"
		}
		cells[k] = c
	}
	return []string{
		strings.Join(cells, " "),
		fmt.Sprintf("pass %d  comparisons %d  swaps %d", s.Pass, s.Comparisons, s.Swaps),
		s.Message,
	}
}

// Steps sorts a copy of values ascending.
func Steps(values []int) []Step {
	if len(values) == 0 {
		return []Step{{Phase: Empty, I: -1, J: -1, Message: "Nothing to sort"}}
	}
	if len(values) > MaxValues {
		values = values[:MaxValues]
	}
	a := append([]int(nil), values...)
	n := len(a)
	st := Step{I: -1, J: -1}
	out := []Step{st.snap(Start, a, fmt.Sprintf("Sorting %d values", n))}

	for pass := 0; pass < n-1; pass++ {
		st.Pass = pass + 1
		swapped := false
		for i := 0; i < n-1-pass; i++ {
			st.I, st.J = i, i+1
			st.Comparisons++
			out = append(out, st.snap(Compare, a, fmt.Sprintf("Compare %d and %d", a[i], a[i+1])))
			if a[i] > a[i+1] {
				a[i], a[i+1] = a[i+1], a[i]
				st.Swaps++
				swapped = true
				out = append(out, st.snap(Swap, a, fmt.Sprintf("Swap %d and %d", a[i+1], a[i])))
			}
		}
		st.Sorted = pass + 1
		if !swapped {
			break
		}
	}
	st.Sorted = n
	st.I, st.J = -1, -1
	return append(out, st.snap(Done, a,
		fmt.Sprintf("Sorted after %d comparisons and %d swaps", st.Comparisons, st.Swaps)))
}

func (s Step) snap(phase Phase, values []int, msg string) Step {
	s.Phase = phase
	s.Values = append([]int(nil), values...)
	s.Message = msg
	return s
}

func init() {
	viz.Register(viz.Visualizer{
		Name:    "bubble-sort",
		Title:   "Bubble Sort",
		Topic:   "sorting",
		Summary: "repeatedly swap adjacent out-of-order pairs until a pass makes no swap",
		Params: []viz.ParamSpec{
			{Key: "values", Label: "Values", Default: "5,1,4,2,8,3"},
			{Key: "shuffle", Label: "Shuffle first", Default: "false"},
			{Key: "seed", Label: "Shuffle seed", Default: "1", Help: "same seed, same order"},
		},
		Controls: playback.DefaultControls(),
		Random:   true,
		Steps: viz.Erase(func(p viz.Params) []Step {
			values := p.Ints("values", "")
			if p.Bool("shuffle", false) {
				vizutil.Shuffle(values, vizutil.NewRand(p.Int64("seed", 1)))
			}
			return Steps(values)
		}),
	})
}
