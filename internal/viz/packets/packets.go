// Package packets steps through a payload split into units that hop across
// a small fixed topology and are reassembled by sequence number.
package packets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/viz"
)

const (
	MaxPayload  = 128
	DefaultSize = 4
	MaxSize     = 16
)

// Routes are the fixed paths through the topology. Unit i takes
// Routes[i%len(Routes)], so the same payload always routes the same way.
var Routes = [][]string{
	{"sender", "r1", "r2", "receiver"},
	{"sender", "r1", "r3", "r4", "receiver"},
	{"sender", "r5", "receiver"},
}

// RouteFor returns a copy of the route for sequence number seq.
func RouteFor(seq int) []string {
	return append([]string(nil), Routes[seq%len(Routes)]...)
}

// Unit is one packet. Hop indexes Route.
type Unit struct {
	Seq     int      `json:"seq"`
	Data    string   `json:"data"`
	Route   []string `json:"route"`
	Hop     int      `json:"hop"`
	Arrived bool     `json:"arrived"`
}

// At is the node the unit currently sits on.
func (u Unit) At() string { return u.Route[u.Hop] }

type Phase string

const (
	Start  Phase = "start"
	Moving Phase = "moving"
	Done   Phase = "done"
	Empty  Phase = "empty"
)

// Step is one snapshot. Tick is -1 before the first tick. Reassembled is set
// only once every unit has arrived.
type Step struct {
	Phase       Phase  `json:"phase"`
	Tick        int    `json:"tick"`
	Payload     string `json:"payload"`
	Units       []Unit `json:"units"`
	Moved       []int  `json:"moved"`
	Arrivals    []int  `json:"arrivals"`
	Reassembled string `json:"reassembled"`
	Complete    bool   `json:"complete"`
	Message     string `json:"message"`
}

func (s Step) Caption() string { return s.Message }

func (s Step) Lines() []string {
	lines := make([]string, 0, len(s.Units)+2)
	for _, u := range s.Units {
		hops := make([]string, len(u.Route))
		for i, h := range u.Route {
			if i == u.Hop {
				h = "[" + h + "]"
			}
			hops[i] = h
		}
		lines = append(lines, fmt.Sprintf("#%d %-*q %s", u.Seq, MaxSize+2, u.Data, strings.Join(hops, " > ")))
	}
	if s.Complete {
		lines = append(lines, "reassembled: "+s.Reassembled)
	}
	return append(lines, s.Message)
}

// Split cuts payload into units of size runes.
func Split(payload string, size int) []Unit {
	size = viz.Clamp(size, 1, MaxSize)
	rs := []rune(payload)
	var out []Unit
	for i := 0; i < len(rs); i += size {
		end := min(i+size, len(rs))
		seq := len(out)
		out = append(out, Unit{Seq: seq, Data: string(rs[i:end]), Route: RouteFor(seq)})
	}
	return out
}

// Reassemble concatenates units by sequence number. It reports false unless
// every unit has arrived.
func Reassemble(units []Unit) (string, bool) {
	sorted := append([]Unit(nil), units...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Seq < sorted[j].Seq })
	var b strings.Builder
	for _, u := range sorted {
		if !u.Arrived {
			return "", false
		}
		b.WriteString(u.Data)
	}
	return b.String(), true
}

// Steps simulates delivery. Unit i starts moving on tick i; each tick every
// started, undelivered unit moves one hop. The run ends on the first tick
// where nothing moves.
func Steps(payload string, size int) []Step {
	if payload == "" {
		return []Step{{Phase: Empty, Tick: -1, Message: "Nothing to send"}}
	}
	if rs := []rune(payload); len(rs) > MaxPayload {
		payload = string(rs[:MaxPayload])
	}
	units := Split(payload, size)
	var arrivals []int
	out := []Step{snap(Start, -1, payload, units, nil, arrivals,
		fmt.Sprintf("%d units queued at sender", len(units)))}

	for tick := 0; ; tick++ {
		var moved []int
		for i := range units {
			u := &units[i]
			if u.Arrived || u.Seq > tick {
				continue
			}
			u.Hop++
			moved = append(moved, u.Seq)
			if u.Hop == len(u.Route)-1 {
				u.Arrived = true
				arrivals = append(arrivals, u.Seq)
			}
		}
		if len(moved) == 0 {
			break
		}
		out = append(out, snap(Moving, tick, payload, units, moved, arrivals,
			fmt.Sprintf("Tick %d: %d moved, %d/%d delivered", tick, len(moved), len(arrivals), len(units))))
	}

	last := out[len(out)-1]
	data, ok := Reassemble(units)
	done := snap(Done, last.Tick, payload, units, nil, arrivals, "")
	done.Complete = ok
	done.Reassembled = data
	done.Message = fmt.Sprintf("All %d units delivered; reassembled %q", len(units), data)
	return append(out, done)
}

func snap(phase Phase, tick int, payload string, units []Unit, moved, arrivals []int, msg string) Step {
	cp := make([]Unit, len(units))
	for i, u := range units {
		u.Route = append([]string(nil), u.Route...)
		cp[i] = u
	}
	return Step{
		Phase:    phase,
		Tick:     tick,
		Payload:  payload,
		Units:    cp,
		Moved:    append([]int(nil), moved...),
		Arrivals: append([]int(nil), arrivals...),
		Message:  msg,
	}
}

func init() {
	viz.Register(viz.Visualizer{
		Name:    "packet-routing",
		Title:   "Packet Routing",
		Topic:   "networking",
		Summary: "split a message into packets, route them hop by hop, reassemble in order",
		Params: []viz.ParamSpec{
			{Key: "payload", Label: "Message", Default: "HELLO, NETWORK!"},
			{Key: "size", Label: "Packet size", Default: "4"},
		},
		Controls: playback.DefaultControls(),
		Steps: viz.Erase(func(p viz.Params) []Step {
			return Steps(p.String("payload", ""), p.Int("size", DefaultSize, 1, MaxSize))
		}),
	})
}
