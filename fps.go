package pinchview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefreshTicks is how often the overlay text is redrawn, in ticks.
const fpsRefreshTicks = 30

// fpsOverlay draws the current FPS and TPS in the top-left corner. The text
// is re-rendered into a small cached image every fpsRefreshTicks ticks.
type fpsOverlay struct {
	img   *ebiten.Image
	ticks int
}

func (o *fpsOverlay) update() {
	if o.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		o.img = ebiten.NewImage(100, 32)
		o.ticks = fpsRefreshTicks
	}
	o.ticks++
	if o.ticks < fpsRefreshTicks {
		return
	}
	o.ticks = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		return
	}
	screen.DrawImage(o.img, nil)
}
