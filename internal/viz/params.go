package viz

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Params are the raw user inputs of a visualizer. Accessors sanitize and
// default; they never fail.
type Params map[string]string

// ParamSpec describes one input a visualizer accepts.
type ParamSpec struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Default string `json:"default"`
	Help    string `json:"help,omitempty"`
}

// With returns a copy of p with overrides applied.
func (p Params) With(overrides map[string]string) Params {
	out := make(Params, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// String returns the raw value, or def when absent.
func (p Params) String(key, def string) string {
	v, ok := p[key]
	if !ok {
		return def
	}
	return v
}

// Int parses key. Absent keys use def, unparsable values become 0, and the
// result is clamped into [lo, hi]. Values too large for an int saturate
// before clamping.
func (p Params) Int(key string, def, lo, hi int) int {
	v, ok := p[key]
	n := def
	if ok {
		n = ParseInt(v)
	}
	return Clamp(n, lo, hi)
}

// Int64 is Int without bounds.
func (p Params) Int64(key string, def int64) int64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	n, err := strconv.ParseInt(v, 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		if strings.HasPrefix(v, "-") {
			return math.MinInt64
		}
		return math.MaxInt64
	case err != nil:
		return 0
	}
	return n
}

// Bool accepts the strconv spellings; anything else is def.
func (p Params) Bool(key string, def bool) bool {
	v, ok := p[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// Ints parses a comma or space separated list. Bad items become 0. An absent
// key parses def.
func (p Params) Ints(key, def string) []int {
	return ParseInts(p.String(key, def))
}

// ParseInt parses a decimal integer. Out of range values saturate to the
// int limits; anything else unparsable is 0.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	switch {
	case errors.Is(err, strconv.ErrRange):
		if strings.HasPrefix(s, "-") {
			return math.MinInt
		}
		return math.MaxInt
	case err != nil:
		return 0
	}
	return n
}

// ParseInts splits on commas and whitespace.
func ParseInts(s string) []int {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == ';'
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		out = append(out, ParseInt(f))
	}
	return out
}

// Clamp bounds n to [lo, hi]. hi < lo disables the upper bound.
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if hi >= lo && n > hi {
		return hi
	}
	return n
}
