package pinchview

import "math"

// Clamp returns min if value < min, max if value > max, and value otherwise.
// NaN maps to min so a non-finite value never reaches the geometry.
func Clamp(value, min, max float64) float64 {
	if value < min || math.IsNaN(value) {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// clampSize restricts a width/height pair to [origin, maxZoom*origin].
func (g *geometry) clampSize(w, h float64) (float64, float64) {
	w = Clamp(w, g.origin.Width, g.maxZoom*g.origin.Width)
	h = Clamp(h, g.origin.Height, g.maxZoom*g.origin.Height)
	return w, h
}

// clampLeft restricts left so the image edge never leaves the screen edge.
func (g *geometry) clampLeft(left, w float64) float64 {
	return Clamp(left, g.origin.Width-w, 0)
}

// clampTop restricts top when the image is taller than the screen and
// centers it vertically otherwise.
func (g *geometry) clampTop(top, h float64) float64 {
	sh := g.viewport.h()
	if h > sh {
		return Clamp(top, sh-h, 0)
	}
	return g.restTop(h)
}

// restTop is the centering offset for an image of height h that fits the
// screen vertically.
func (g *geometry) restTop(h float64) float64 {
	return (g.viewport.h() - h) / 2
}

// clampBox applies every boundary rule to b.
func (g *geometry) clampBox(b Box) Box {
	b.Width, b.Height = g.clampSize(b.Width, b.Height)
	b.Left = g.clampLeft(b.Left, b.Width)
	b.Top = g.clampTop(b.Top, b.Height)
	return b
}
