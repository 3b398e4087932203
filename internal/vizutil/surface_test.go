package vizutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResize(t *testing.T) {
	cases := []struct {
		name    string
		surface *StaticSurface
		base    int
		aspect  float64
		logical Size
		pixels  Size
	}{
		{"retina", &StaticSurface{Width: 800, Ratio: 2}, 320, 2, Size{800, 400}, Size{1600, 800}},
		{"base wins", &StaticSurface{Width: 100, Ratio: 1}, 320, 1.6, Size{320, 200}, Size{320, 200}},
		{"fractional dpr", &StaticSurface{Width: 600, Ratio: 1.5}, 0, 3, Size{600, 200}, Size{900, 300}},
		{"bad dpr", &StaticSurface{Width: 400, Ratio: 0}, 10, 4, Size{400, 100}, Size{400, 100}},
		{"bad aspect", &StaticSurface{Width: 50, Ratio: 1}, 10, -1, Size{50, 50}, Size{50, 50}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Resize(c.surface, c.base, c.aspect)
			assert.Equal(t, c.logical, got)
			assert.Equal(t, c.pixels, c.surface.Pixels)
		})
	}
}

func TestResizeNilSurface(t *testing.T) {
	assert.Equal(t, Size{W: 300, H: 150}, Resize(nil, 300, 2))
}
