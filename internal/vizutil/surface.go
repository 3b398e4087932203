package vizutil

import "math"

// Surface is a drawing target whose backing store is sized in device pixels.
type Surface interface {
	// AvailableWidth is the logical width the layout offers.
	AvailableWidth() int
	DevicePixelRatio() float64
	SetPixelSize(w, h int)
}

// Size is a width/height pair.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Resize sizes target's backing store for its pixel density and returns the
// logical size layout code should use. base is the minimum logical width;
// aspect is width/height.
func Resize(target Surface, base int, aspect float64) Size {
	if base <= 0 {
		base = 1
	}
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	w := base
	if target != nil && target.AvailableWidth() > w {
		w = target.AvailableWidth()
	}
	h := int(math.Round(float64(w) / aspect))
	if h < 1 {
		h = 1
	}
	if target == nil {
		return Size{W: w, H: h}
	}
	dpr := target.DevicePixelRatio()
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}
	target.SetPixelSize(int(math.Round(float64(w)*dpr)), int(math.Round(float64(h)*dpr)))
	return Size{W: w, H: h}
}

// StaticSurface is a Surface with fixed metrics that records the pixel size it
// was given. Front-ends that learn their metrics from an event use it.
type StaticSurface struct {
	Width  int
	Ratio  float64
	Pixels Size
}

func (s *StaticSurface) AvailableWidth() int       { return s.Width }
func (s *StaticSurface) DevicePixelRatio() float64 { return s.Ratio }
func (s *StaticSurface) SetPixelSize(w, h int)     { s.Pixels = Size{W: w, H: h} }
