package pinchview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title string
	// Width and Height are the window size. Zero means the viewer's
	// viewport size.
	Width, Height int
	// ShowFPS draws an FPS/TPS counter over the viewer.
	ShowFPS bool
}

// runGame adapts a Viewer to ebiten.Game and ends the loop once the viewer
// closes.
type runGame struct {
	viewer *Viewer
	fps    *fpsOverlay
}

func (g *runGame) Update() error {
	if err := g.viewer.Update(); err != nil {
		return err
	}
	if g.viewer.Closed() {
		return ebiten.Termination
	}
	if g.fps != nil {
		g.fps.update()
	}
	return nil
}

func (g *runGame) Draw(screen *ebiten.Image) {
	g.viewer.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *runGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewer.Layout(outsideWidth, outsideHeight)
}

// Run opens a window and runs v until it is closed by a tap, the Escape key
// or the window close button. It blocks on the calling goroutine, which
// must be the main goroutine.
func Run(v *Viewer, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = v.vp.ScreenWidth, v.vp.ScreenHeight
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)

	g := &runGame{viewer: v}
	if cfg.ShowFPS {
		g.fps = &fpsOverlay{}
	}
	err := ebiten.RunGame(g)
	v.Close()
	if err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
