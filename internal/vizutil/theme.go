package vizutil

import (
	"strconv"
	"sync/atomic"
)

// Mode is the ambient light/dark setting.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode maps anything other than "dark" to Light.
func ParseMode(s string) Mode {
	if Mode(s) == Dark {
		return Dark
	}
	return Light
}

// Palette is the set of colors a painter needs, as #rrggbb strings.
type Palette struct {
	Mode       Mode   `json:"mode"`
	Foreground string `json:"fg"`
	Background string `json:"bg"`
	Border     string `json:"border"`
	Accent     string `json:"accent"`
	Muted      string `json:"muted"`
	Highlight  string `json:"highlight"`
}

var palettes = map[Mode]Palette{
	Light: {Mode: Light, Foreground: "#1f2328", Background: "#ffffff", Border: "#d0d7de", Accent: "#0969da", Muted: "#8c959f", Highlight: "#bf8700"},
	Dark:  {Mode: Dark, Foreground: "#e6edf3", Background: "#0d1117", Border: "#30363d", Accent: "#58a6ff", Muted: "#6e7681", Highlight: "#d29922"},
}

// ThemeSource reports the theme currently in effect.
type ThemeSource interface {
	Mode() Mode
}

// Lookup returns the palette for src's current mode. Painters call it on
// every render; the mode can change between frames.
func Lookup(src ThemeSource) Palette {
	m := Light
	if src != nil {
		m = src.Mode()
	}
	p, ok := palettes[m]
	if !ok {
		return palettes[Light]
	}
	return p
}

// AmbientTheme is a settable ThemeSource safe for concurrent use.
type AmbientTheme struct {
	v atomic.Value
}

// NewAmbientTheme starts at m.
func NewAmbientTheme(m Mode) *AmbientTheme {
	t := &AmbientTheme{}
	t.Set(m)
	return t
}

func (t *AmbientTheme) Set(m Mode) { t.v.Store(ParseMode(string(m))) }

func (t *AmbientTheme) Mode() Mode {
	m, ok := t.v.Load().(Mode)
	if !ok {
		return Light
	}
	return m
}

// Toggle flips light/dark and returns the new mode.
func (t *AmbientTheme) Toggle() Mode {
	next := Dark
	if t.Mode() == Dark {
		next = Light
	}
	t.Set(next)
	return next
}

// HexRGB parses a #rrggbb palette entry.
func HexRGB(s string) (r, g, b uint8, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
