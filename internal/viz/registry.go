// Package viz is the step-generator contract. Each visualizer registers a
// Visualizer whose Steps function maps inputs to the full, immutable sequence
// of snapshots the engine plays back.
//
// Steps must be deterministic for identical Params unless the visualizer sets
// Random, in which case vizutil.Shuffle is the only source of variation.
// Empty or degenerate input yields a single no-op snapshot, never nil.
package viz

import (
	"sort"
	"strings"
	"sync"

	"github.com/coreman2200/stepviz/internal/playback"
)

// Captioner gives a one-line summary of a snapshot.
type Captioner interface {
	Caption() string
}

// Liner renders a snapshot as plain text rows for terminal surfaces.
type Liner interface {
	Lines() []string
}

// Visualizer describes one algorithm presentation. Random marks the shuffle
// boundary: Steps may differ between calls unless a seed param pins it.
type Visualizer struct {
	Name     string             `json:"name"`
	Title    string             `json:"title"`
	Topic    string             `json:"topic"`
	Summary  string             `json:"summary"`
	Params   []ParamSpec        `json:"params"`
	Controls playback.Controls  `json:"controls"`
	Random   bool               `json:"random"`
	Steps    func(Params) []any `json:"-"`
}

// Defaults returns the declared default for every param.
func (v Visualizer) Defaults() Params {
	p := make(Params, len(v.Params))
	for _, s := range v.Params {
		p[s.Key] = s.Default
	}
	return p
}

// Generate runs Steps over the defaults merged with in.
func (v Visualizer) Generate(in Params) []any {
	if v.Steps == nil {
		return nil
	}
	return v.Steps(v.Defaults().With(in))
}

var (
	mu   sync.RWMutex
	vizs = map[string]Visualizer{}
)

// Register adds v under v.Name. Empty names and nil generators are ignored.
func Register(v Visualizer) {
	if v.Name == "" || v.Steps == nil {
		return
	}
	mu.Lock()
	vizs[v.Name] = v
	mu.Unlock()
}

// Lookup finds a visualizer by name.
func Lookup(name string) (Visualizer, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := vizs[name]
	return v, ok
}

// List returns every visualizer sorted by topic then name.
func List() []Visualizer {
	mu.RLock()
	out := make([]Visualizer, 0, len(vizs))
	for _, v := range vizs {
		out = append(out, v)
	}
	mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Topic != out[j].Topic {
			return out[i].Topic < out[j].Topic
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Search filters List by a case-insensitive query over name, title, topic
// and summary. Every whitespace separated term must match.
func Search(query string) []Visualizer {
	terms := strings.Fields(strings.ToLower(query))
	all := List()
	if len(terms) == 0 {
		return all
	}
	out := all[:0]
	for _, v := range all {
		hay := strings.ToLower(strings.Join([]string{v.Name, v.Title, v.Topic, v.Summary}, " "))
		match := true
		for _, t := range terms {
			if !strings.Contains(hay, t) {
				match = false
				break
			}
		}
		if match {
			out = append(out, v)
		}
	}
	return out
}

// Caption returns the snapshot caption, or "" if it has none.
func Caption(step any) string {
	if c, ok := step.(Captioner); ok {
		return c.Caption()
	}
	return ""
}

// Lines returns the snapshot's text rows, falling back to its caption.
func Lines(step any) []string {
	if l, ok := step.(Liner); ok {
		return l.Lines()
	}
	if c := Caption(step); c != "" {
		return []string{c}
	}
	return nil
}

// Erase adapts a typed generator to the registry's []any form.
func Erase[S any](gen func(Params) []S) func(Params) []any {
	return func(p Params) []any {
		steps := gen(p)
		out := make([]any, len(steps))
		for i, s := range steps {
			out[i] = s
		}
		return out
	}
}
