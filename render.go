package pinchview

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	spinnerSpokes = 8
	spinnerRadius = 18.0
	spinnerWidth  = 3.0
	spinnerPeriod = 800 * time.Millisecond
)

// Draw renders the container at horizontal offset x within dst. While the
// image is loading, or after it failed to load, a placeholder spinner is
// drawn instead.
func (c *Container) Draw(dst *ebiten.Image, x float64, now time.Time) {
	vp := c.geom.viewport
	if c.state != LoadLoaded || c.img == nil {
		drawSpinner(dst, float32(x+vp.w()/2), float32(vp.h()/2), now, c.state == LoadFailed)
		return
	}
	if c.tex == nil {
		c.tex = ebiten.NewImageFromImage(c.img)
	}

	b := c.geom.box
	src := c.tex.Bounds()
	if src.Dx() == 0 || src.Dy() == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(b.Width/float64(src.Dx()), b.Height/float64(src.Dy()))
	op.GeoM.Translate(x+b.Left, b.Top)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(c.tex, &op)
}

// drawSpinner draws a ring of spokes whose brightness rotates over time.
// A stalled spinner marks a failed load.
func drawSpinner(dst *ebiten.Image, cx, cy float32, now time.Time, stalled bool) {
	head := 0
	if !stalled {
		phase := float64(now.UnixNano()%int64(spinnerPeriod)) / float64(spinnerPeriod)
		head = int(phase * spinnerSpokes)
	}
	for i := 0; i < spinnerSpokes; i++ {
		angle := 2 * math.Pi * float64(i) / spinnerSpokes
		sin, cos := math.Sincos(angle)
		x0 := cx + float32(cos*spinnerRadius*0.5)
		y0 := cy + float32(sin*spinnerRadius*0.5)
		x1 := cx + float32(cos*spinnerRadius)
		y1 := cy + float32(sin*spinnerRadius)

		alpha := uint8(60)
		if !stalled {
			age := (head - i + spinnerSpokes) % spinnerSpokes
			alpha = uint8(255 - age*(195/spinnerSpokes))
		}
		clr := color.RGBA{alpha, alpha, alpha, alpha}
		vector.StrokeLine(dst, x0, y0, x1, y1, spinnerWidth, clr, true)
	}
}
