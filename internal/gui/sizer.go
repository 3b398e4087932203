package gui

import "github.com/coreman2200/stepviz/internal/vizutil"

// sizer turns the window's outside size into the logical canvas size and
// reports when it changed.
type sizer struct {
	base   int
	aspect float64
	surf   vizutil.StaticSurface
	last   vizutil.Size
}

func newSizer(base int, aspect float64) *sizer {
	return &sizer{base: base, aspect: aspect}
}

func (s *sizer) update(outsideWidth int, dpr float64) (vizutil.Size, bool) {
	s.surf.Width = outsideWidth
	s.surf.Ratio = dpr
	size := vizutil.Resize(&s.surf, s.base, s.aspect)
	changed := size != s.last
	s.last = size
	return size, changed
}

// pixels is the backing store size the last update asked for.
func (s *sizer) pixels() vizutil.Size { return s.surf.Pixels }
