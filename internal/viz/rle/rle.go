// Package rle steps through run-length encoding of a string.
//
// A group encodes as <count><symbol>. Symbols that are decimal digits or a
// backslash are written as \<symbol> so every encoding decodes unambiguously.
package rle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/viz"
)

// MaxText caps the input length in runes.
const MaxText = 256

// Group is one maximal run of a symbol.
type Group struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

// Code is the encoded form of g.
func (g Group) Code() string {
	sym := g.Symbol
	if needsEscape(sym) {
		sym = `\` + sym
	}
	return strconv.Itoa(g.Count) + sym
}

// Groups splits text into maximal runs, left to right. A byte that is not
// valid UTF-8 is a symbol of its own, so Encode keeps it as is.
func Groups(text string) []Group {
	var out []Group
	for i := 0; i < len(text); {
		_, w := utf8.DecodeRuneInString(text[i:])
		s := text[i : i+w]
		i += w
		if n := len(out); n > 0 && out[n-1].Symbol == s {
			out[n-1].Count++
			continue
		}
		out = append(out, Group{Symbol: s, Count: 1})
	}
	return out
}

// Encode run-length encodes text.
func Encode(text string) string {
	var b strings.Builder
	for _, g := range Groups(text) {
		b.WriteString(g.Code())
	}
	return b.String()
}

var ErrMalformed = errors.New("rle: malformed encoding")

// Decode reverses Encode.
func Decode(enc string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(enc); {
		start := i
		for i < len(enc) && enc[i] >= '0' && enc[i] <= '9' {
			i++
		}
		if i == start || i >= len(enc) {
			return "", fmt.Errorf("%w at offset %d", ErrMalformed, start)
		}
		count, err := strconv.Atoi(enc[start:i])
		if err != nil || count <= 0 {
			return "", fmt.Errorf("%w: bad count %q", ErrMalformed, enc[start:i])
		}
		if enc[i] == '\\' {
			i++
			if i >= len(enc) {
				return "", fmt.Errorf("%w: dangling escape", ErrMalformed)
			}
		}
		_, w := utf8.DecodeRuneInString(enc[i:])
		b.WriteString(strings.Repeat(enc[i:i+w], count))
		i += w
	}
	return b.String(), nil
}

// Ratio is 1 - encoded/original, measured in runes. Positive means smaller.
func Ratio(original, encoded string) float64 {
	n := utf8.RuneCountInString(original)
	if n == 0 {
		return 0
	}
	return 1 - float64(utf8.RuneCountInString(encoded))/float64(n)
}

func needsEscape(sym string) bool {
	return sym == `\` || (len(sym) == 1 && sym[0] >= '0' && sym[0] <= '9')
}

type Phase string

const (
	Start Phase = "start"
	Run   Phase = "group"
	Done  Phase = "done"
	Empty Phase = "empty"
)

// Step is one snapshot. [From, To) is the rune range of the current group.
type Step struct {
	Phase   Phase   `json:"phase"`
	Text    string  `json:"text"`
	From    int     `json:"from"`
	To      int     `json:"to"`
	Groups  []Group `json:"groups"`
	Encoded string  `json:"encoded"`
	Ratio   float64 `json:"ratio"`
	Message string  `json:"message"`
}

func (s Step) Caption() string { return s.Message }

func (s Step) Lines() []string {
	lines := []string{s.Text}
	if s.Phase == Run {
		lines = append(lines, strings.Repeat(" ", s.From)+strings.Repeat("^", s.To-s.From))
	}
	return append(lines, "encoded: "+s.Encoded, s.Message)
}

// Steps emits one snapshot per group and a summary. Invalid UTF-8 is shown
// as U+FFFD since snapshots are rendered as text.
func Steps(text string) []Step {
	if text == "" {
		return []Step{{Phase: Empty, Message: "Nothing to encode"}}
	}
	text = strings.ToValidUTF8(text, string(utf8.RuneError))
	if rs := []rune(text); len(rs) > MaxText {
		text = string(rs[:MaxText])
	}
	groups := Groups(text)
	out := []Step{{Phase: Start, Text: text, Message: fmt.Sprintf("Encoding %d symbols", utf8.RuneCountInString(text))}}

	var enc strings.Builder
	pos := 0
	for i, g := range groups {
		enc.WriteString(g.Code())
		out = append(out, Step{
			Phase:   Run,
			Text:    text,
			From:    pos,
			To:      pos + g.Count,
			Groups:  append([]Group(nil), groups[:i+1]...),
			Encoded: enc.String(),
			Message: fmt.Sprintf("Run of %d %q -> %s", g.Count, g.Symbol, g.Code()),
		})
		pos += g.Count
	}

	encoded := enc.String()
	ratio := Ratio(text, encoded)
	verdict := "smaller"
	if ratio < 0 {
		verdict = "larger"
	} else if ratio == 0 {
		verdict = "no change"
	}
	return append(out, Step{
		Phase:   Done,
		Text:    text,
		To:      pos,
		Groups:  append([]Group(nil), groups...),
		Encoded: encoded,
		Ratio:   ratio,
		Message: fmt.Sprintf("%s: %d -> %d symbols, ratio %.2f (%s)", encoded, utf8.RuneCountInString(text), utf8.RuneCountInString(encoded), ratio, verdict),
	})
}

func init() {
	viz.Register(viz.Visualizer{
		Name:     "run-length",
		Title:    "Run-Length Encoding",
		Topic:    "compression",
		Summary:  "collapse runs of repeated symbols into count and symbol pairs",
		Params:   []viz.ParamSpec{{Key: "text", Label: "Text", Default: "aaabbbcccd"}},
		Controls: playback.DefaultControls(),
		Steps: viz.Erase(func(p viz.Params) []Step {
			return Steps(p.String("text", ""))
		}),
	})
}
