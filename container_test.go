package pinchview

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var testViewport = Viewport{ScreenWidth: 400, ScreenHeight: 800}

var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// at returns the test clock advanced by ms milliseconds.
func at(ms int) time.Time {
	return testEpoch.Add(time.Duration(ms) * time.Millisecond)
}

// touchEv builds an event from x,y pairs. Fingers get IDs 1, 2, ...
func touchEv(ms int, xy ...float64) TouchEvent {
	ev := TouchEvent{Time: at(ms)}
	for i := 0; i+1 < len(xy); i += 2 {
		ev.Touches = append(ev.Touches, Touch{ID: i/2 + 1, X: xy[i], Y: xy[i+1]})
	}
	return ev
}

// recorder captures container callbacks and gesture events.
type recorder struct {
	starts int
	moves  []float64
	ends   []bool
	closes int
	events []GestureEvent
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnStart: func() { r.starts++ },
		OnMove:  func(dx float64) { r.moves = append(r.moves, dx) },
		OnEnd:   func(allow bool) { r.ends = append(r.ends, allow) },
		OnClose: func() { r.closes++ },
	}
}

func (r *recorder) EmitEvent(e GestureEvent) { r.events = append(r.events, e) }

func (r *recorder) eventTypes() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func newTestContainer(q *FrameQueue, rec *recorder) *Container {
	c := NewContainer(ContainerOptions{
		Src:       "test.png",
		Viewport:  testViewport,
		Config:    DefaultConfig(),
		Callbacks: rec.callbacks(),
		Frames:    q,
	})
	c.store = rec
	return c
}

// newLoadedContainer returns a container showing a w x h image in the
// 400x800 test viewport.
func newLoadedContainer(t *testing.T, w, h int) (*Container, *FrameQueue, *recorder) {
	t.Helper()
	q := &FrameQueue{}
	rec := &recorder{}
	c := newTestContainer(q, rec)
	c.finishLoad(loadResult{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		info: &ImageInfo{Width: w, Height: h},
	})
	if c.State() != LoadLoaded {
		t.Fatalf("State = %v, want loaded", c.State())
	}
	return c, q, rec
}

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// waitLoaded polls Update until the load settles.
func waitLoaded(t *testing.T, c *Container) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !c.State().IsLoaded() {
		if time.Now().After(deadline) {
			t.Fatal("load did not settle")
		}
		time.Sleep(time.Millisecond)
		c.Update()
	}
}

func TestLoadStateString(t *testing.T) {
	tests := []struct {
		s              LoadState
		name           string
		loading, ready bool
	}{
		{LoadIdle, "idle", false, false},
		{LoadLoading, "loading", true, false},
		{LoadLoaded, "loaded", false, true},
		{LoadFailed, "failed", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.String(); got != tt.name {
				t.Errorf("String() = %q", got)
			}
			if tt.s.IsLoading() != tt.loading || tt.s.IsLoaded() != tt.ready {
				t.Errorf("IsLoading/IsLoaded = %v/%v", tt.s.IsLoading(), tt.s.IsLoaded())
			}
		})
	}
}

func TestNewContainerDefaults(t *testing.T) {
	c := NewContainer(ContainerOptions{Src: "a.png", Index: 3, Viewport: testViewport, Frames: &FrameQueue{}})
	if c.State() != LoadIdle {
		t.Errorf("State = %v, want idle", c.State())
	}
	if c.Index() != 3 || c.Src() != "a.png" {
		t.Errorf("Index/Src = %d/%q", c.Index(), c.Src())
	}
	if c.cfg.MaxZoom != DefaultConfig().MaxZoom {
		t.Errorf("zero config not replaced by defaults: %+v", c.cfg)
	}
	if _, ok := c.Origin(); ok {
		t.Error("origin valid before load")
	}
	if c.Zoom() != 1 {
		t.Errorf("Zoom = %v, want 1", c.Zoom())
	}
}

func TestContainerLoadFromFile(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "wide.png", 200, 100)
	rec := &recorder{}
	c := NewContainer(ContainerOptions{
		Src:       path,
		Viewport:  testViewport,
		Config:    DefaultConfig(),
		Callbacks: rec.callbacks(),
		Frames:    &FrameQueue{},
	})
	c.Load(context.Background())
	if !c.State().IsLoading() {
		t.Fatalf("State = %v, want loading", c.State())
	}
	waitLoaded(t, c)

	if c.State() != LoadLoaded {
		t.Fatalf("State = %v, err = %v", c.State(), c.Err())
	}
	o, ok := c.Origin()
	if !ok {
		t.Fatal("origin not valid after load")
	}
	want := OriginBox{Width: 400, Height: 200, Top: 300}
	if o != want {
		t.Errorf("Origin = %+v, want %+v", o, want)
	}
	if c.Box() != want.Box() {
		t.Errorf("Box = %v, want %v", c.Box(), want.Box())
	}
	if info := c.Info(); info == nil || info.Width != 200 || info.Format != "png" {
		t.Errorf("Info = %+v", info)
	}
}

func TestContainerLoadMissingFile(t *testing.T) {
	c := NewContainer(ContainerOptions{
		Src:      filepath.Join(t.TempDir(), "missing.png"),
		Viewport: testViewport,
		Frames:   &FrameQueue{},
	})
	c.Load(context.Background())
	waitLoaded(t, c)

	if c.State() != LoadFailed {
		t.Fatalf("State = %v, want failed", c.State())
	}
	if !errors.Is(c.Err(), os.ErrNotExist) {
		t.Errorf("Err = %v, want not-exist", c.Err())
	}
	if _, ok := c.Origin(); ok {
		t.Error("origin valid after failed load")
	}
}

func TestContainerEmptyImageFails(t *testing.T) {
	c := newTestContainer(&FrameQueue{}, &recorder{})
	c.finishLoad(loadResult{img: image.NewRGBA(image.Rect(0, 0, 0, 0))})
	if c.State() != LoadFailed {
		t.Fatalf("State = %v, want failed", c.State())
	}
	if !errors.Is(c.Err(), ErrEmptyImage) {
		t.Errorf("Err = %v, want ErrEmptyImage", c.Err())
	}
}

func TestContainerReloadResetsBox(t *testing.T) {
	c, _, _ := newLoadedContainer(t, 200, 100)
	zoomIn(c)
	if c.Zoom() == 1 {
		t.Fatal("precondition: container should be zoomed")
	}
	c.finishLoad(loadResult{img: image.NewRGBA(image.Rect(0, 0, 100, 400))})
	o, _ := c.Origin()
	if c.Box() != o.Box() {
		t.Errorf("Box = %v after reload, want origin %v", c.Box(), o.Box())
	}
	if o.Height != 1600 || o.Top != 0 {
		t.Errorf("tall origin = %+v", o)
	}
}

func TestContainerCloseCancelsLoad(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "img.png", 10, 10)
	c := NewContainer(ContainerOptions{Src: path, Viewport: testViewport, Frames: &FrameQueue{}})
	c.Load(context.Background())
	c.Close()
	c.Update()
	if c.State() != LoadLoading {
		t.Errorf("State = %v, a closed container must ignore its load result", c.State())
	}
}

func TestContainerCloseCancelsMomentum(t *testing.T) {
	c, q, _ := newLoadedContainer(t, 200, 100)
	zoomIn(c)
	fling(c, 1000, 10, 100)
	if !c.Animating() {
		t.Fatal("precondition: momentum should be running")
	}
	c.Close()
	if c.Animating() {
		t.Error("Animating after Close")
	}
	if n := q.Flush(at(2000)); n != 0 {
		t.Errorf("Flush ran %d callbacks after Close", n)
	}
}
