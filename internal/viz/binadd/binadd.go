// Package binadd steps through fixed-width ripple-carry binary addition.
package binadd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/viz"
)

const (
	DefaultWidth = 8
	MaxWidth     = 32
)

type Phase string

const (
	Start  Phase = "start"
	Column Phase = "column"
	Done   Phase = "done"
)

// Step is one snapshot. Bit strings are most significant bit first; columns
// not yet added show as '_' in Sum and Carries.
type Step struct {
	Phase    Phase  `json:"phase"`
	Width    int    `json:"width"`
	A        string `json:"a"`
	B        string `json:"b"`
	Column   int    `json:"column"`
	CarryIn  int    `json:"carry_in"`
	CarryOut int    `json:"carry_out"`
	Sum      string `json:"sum"`
	Carries  string `json:"carries"`
	Overflow bool   `json:"overflow"`
	Message  string `json:"message"`
}

func (s Step) Caption() string { return s.Message }

func (s Step) Lines() []string {
	return []string{
		"carry " + s.Carries,
		"    " + s.A,
		"  + " + s.B,
		"  = " + s.Sum,
		s.Message,
	}
}

// ParseOperand reads a binary literal for the given width. Unparsable input
// is 0; values wider than width clamp to the largest width-bit value.
func ParseOperand(s string, width int) uint64 {
	width = viz.Clamp(width, 1, MaxWidth)
	limit := uint64(1)<<uint(width) - 1
	s = strings.TrimPrefix(strings.TrimSpace(s), "0b")
	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return limit
		}
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

// Steps adds a and b one column at a time from the least significant bit.
func Steps(a, b uint64, width int) []Step {
	width = viz.Clamp(width, 1, MaxWidth)
	mask := uint64(1)<<uint(width) - 1
	a &= mask
	b &= mask
	as, bs := bits(a, width), bits(b, width)

	sum := []byte(strings.Repeat("_", width))
	carries := []byte(strings.Repeat("_", width+1))
	carries[width] = '0'

	out := []Step{{
		Phase: Start, Width: width, A: as, B: bs, Column: -1,
		Sum: string(sum), Carries: string(carries),
		Message: fmt.Sprintf("Add %s + %s in %d bits", as, bs, width),
	}}

	carry := uint64(0)
	for col := 0; col < width; col++ {
		ab := a >> uint(col) & 1
		bb := b >> uint(col) & 1
		s := ab ^ bb ^ carry
		cout := ab&bb | carry&(ab^bb)

		pos := width - 1 - col
		sum[pos] = '0' + byte(s)
		carries[pos] = '0' + byte(cout)
		out = append(out, Step{
			Phase: Column, Width: width, A: as, B: bs, Column: col,
			CarryIn: int(carry), CarryOut: int(cout),
			Sum: string(sum), Carries: string(carries),
			Message: fmt.Sprintf("Bit %d: %d + %d + carry %d = %d, carry out %d", col, ab, bb, carry, s, cout),
		})
		carry = cout
	}

	result := string(sum)
	msg := fmt.Sprintf("Result %s", result)
	if carry == 1 {
		msg = fmt.Sprintf("Overflow: carry out 1, result truncated to %s", result)
	}
	return append(out, Step{
		Phase: Done, Width: width, A: as, B: bs, Column: width,
		CarryIn: int(carry), CarryOut: int(carry),
		Sum: result, Carries: string(carries),
		Overflow: carry == 1,
		Message:  msg,
	})
}

func bits(v uint64, width int) string {
	s := strconv.FormatUint(v, 2)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

func init() {
	viz.Register(viz.Visualizer{
		Name:    "binary-addition",
		Title:   "Binary Addition",
		Topic:   "binary arithmetic",
		Summary: "ripple-carry addition with fixed width and overflow",
		Params: []viz.ParamSpec{
			{Key: "a", Label: "A", Default: "00101101"},
			{Key: "b", Label: "B", Default: "00011011"},
			{Key: "width", Label: "Bits", Default: "8"},
		},
		Controls: playback.DefaultControls(),
		Steps: viz.Erase(func(p viz.Params) []Step {
			w := p.Int("width", DefaultWidth, 1, MaxWidth)
			return Steps(ParseOperand(p.String("a", ""), w), ParseOperand(p.String("b", ""), w), w)
		}),
	})
}
