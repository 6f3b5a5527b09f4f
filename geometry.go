package pinchview

import "fmt"

// Box is the live on-screen rectangle of an image, relative to its
// container. The coordinate system has its origin at the top-left, with Y
// increasing downward.
type Box struct {
	Width, Height float64
	Left, Top     float64
}

func (b Box) String() string {
	return fmt.Sprintf("{w=%.1f h=%.1f left=%.1f top=%.1f}", b.Width, b.Height, b.Left, b.Top)
}

// OriginBox is the default-fit geometry of a loaded image (zoom = 1): full
// screen width, proportional height, centered vertically when the image is
// relatively shorter than the screen.
type OriginBox struct {
	Width, Height float64
	Top           float64
}

// Box returns the origin as a live box.
func (o OriginBox) Box() Box {
	return Box{Width: o.Width, Height: o.Height, Top: o.Top}
}

// ActualSize is the natural pixel size of a decoded image.
type ActualSize struct {
	Width, Height int
}

// FitOrigin derives the origin box of an image of the given natural size
// shown in vp. It returns false for degenerate sizes.
func FitOrigin(actual ActualSize, vp Viewport) (OriginBox, bool) {
	if actual.Width <= 0 || actual.Height <= 0 || vp.ScreenWidth <= 0 || vp.ScreenHeight <= 0 {
		return OriginBox{}, false
	}
	aw, ah := float64(actual.Width), float64(actual.Height)
	o := OriginBox{
		Width:  vp.w(),
		Height: ah / aw * vp.w(),
	}
	if ah/aw < vp.h()/vp.w() {
		// Truncated, matching the integer pixel offset the fit was laid out with.
		o.Top = float64(int((vp.h() - o.Height) / 2))
	}
	return o, true
}

// geometry is the Geometry Model: the origin box computed once per load,
// the live box, and the limits both are checked against.
type geometry struct {
	viewport Viewport
	maxZoom  float64
	origin   OriginBox
	box      Box
	valid    bool
}

func newGeometry(vp Viewport, maxZoom float64) geometry {
	if maxZoom < 1 {
		maxZoom = 1
	}
	return geometry{viewport: vp, maxZoom: maxZoom}
}

// seed installs a freshly computed origin and resets the live box to it.
func (g *geometry) seed(o OriginBox) {
	g.origin = o
	g.box = o.Box()
	g.valid = true
}

// reset forgets the origin, e.g. after a failed load.
func (g *geometry) reset() {
	g.origin = OriginBox{}
	g.box = Box{}
	g.valid = false
}

// unzoomed reports whether the image shows at its default-fit width.
func (g *geometry) unzoomed() bool {
	return g.box.Width == g.origin.Width
}

// zoom is the current magnification relative to the origin.
func (g *geometry) zoom() float64 {
	if g.origin.Width == 0 {
		return 1
	}
	return g.box.Width / g.origin.Width
}
