package pinchview

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ErrNoSources is returned by NewViewer for an empty image list.
var ErrNoSources = errors.New("viewer needs at least one image source")

// preloadRadius is how many neighbours on each side of the current image
// are kept loaded.
const preloadRadius = 1

// ViewerOptions configures a new Viewer.
type ViewerOptions struct {
	// Sources are the image URLs or file paths, in display order.
	Sources []string
	// Index is the image shown first. Out-of-range values are clamped.
	Index    int
	Viewport Viewport
	// Config defaults to DefaultConfig() when zero.
	Config Config
	// OnClose is distributed to every image container and fires once.
	OnClose func()
	// Loader fetches images; defaults to local files only.
	Loader *Loader
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// stripSnap eases the strip offset back to rest after a drag.
type stripSnap struct {
	tween *gween.Tween
	start time.Time
}

// Viewer is a full-screen, swipeable image strip. It owns one Container per
// nearby image, routes touches to the current one and pages on the drag
// hand-off callbacks. Viewer implements ebiten.Game.
type Viewer struct {
	cfg     Config
	sources []string
	index   int
	vp      Viewport
	onClose func()
	loader  *Loader
	clock   func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	frames     FrameQueue
	containers map[int]*Container

	input       inputState
	injectQueue [][]Touch

	// dragX is the strip offset contributed by the current drag or snap.
	// dragBase is the offset a drag started from.
	dragX    float64
	dragBase float64
	snap     *stripSnap

	store  EventStore
	debug  bool
	closed bool

	// Keyboard enables Escape to close and Left/Right to page.
	Keyboard bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
	testRunner      *TestRunner
}

// NewViewer creates a viewer and starts loading the first images.
func NewViewer(opts ViewerOptions) (*Viewer, error) {
	if len(opts.Sources) == 0 {
		return nil, ErrNoSources
	}
	if opts.Viewport.ScreenWidth <= 0 || opts.Viewport.ScreenHeight <= 0 {
		return nil, fmt.Errorf("viewer: invalid viewport %dx%d",
			opts.Viewport.ScreenWidth, opts.Viewport.ScreenHeight)
	}
	cfg := opts.Config
	if cfg.MaxZoom == 0 {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loader := opts.Loader
	if loader == nil {
		loader = &Loader{MaxTextureSize: cfg.MaxTextureSize}
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	v := &Viewer{
		cfg:           cfg,
		sources:       append([]string(nil), opts.Sources...),
		vp:            opts.Viewport,
		onClose:       opts.OnClose,
		loader:        loader,
		clock:         clock,
		ctx:           ctx,
		cancel:        cancel,
		containers:    make(map[int]*Container),
		Keyboard:      true,
		ScreenshotDir: "screenshots",
	}
	v.input.mouse = true
	v.index = v.clampIndex(opts.Index)
	v.syncWindow()
	return v, nil
}

func (v *Viewer) clampIndex(i int) int {
	return int(Clamp(float64(i), 0, float64(len(v.sources)-1)))
}

// Index returns the index of the image currently shown.
func (v *Viewer) Index() int { return v.index }

// Len returns the number of images.
func (v *Viewer) Len() int { return len(v.sources) }

// Closed reports whether the viewer has been closed.
func (v *Viewer) Closed() bool { return v.closed }

// Current returns the container of the image currently shown.
func (v *Viewer) Current() *Container { return v.containers[v.index] }

// Container returns the container for image i, or nil if it is not loaded
// because it is outside the preload window.
func (v *Viewer) Container(i int) *Container { return v.containers[i] }

// Offset returns the strip offset of the current drag or snap animation.
func (v *Viewer) Offset() float64 { return v.dragX }

// SetEventStore sets the optional ECS bridge.
func (v *Viewer) SetEventStore(store EventStore) {
	v.store = store
	for _, c := range v.containers {
		c.store = store
	}
}

// SetDebugMode enables or disables debug logging to stderr.
func (v *Viewer) SetDebugMode(enabled bool) {
	v.debug = enabled
	for _, c := range v.containers {
		c.debug = enabled
	}
}

// SetIndex shows image i immediately.
func (v *Viewer) SetIndex(i int) {
	i = v.clampIndex(i)
	if i == v.index {
		return
	}
	if cur := v.Current(); cur != nil {
		cur.cancelGesture()
	}
	v.index = i
	v.dragX = 0
	v.dragBase = 0
	v.snap = nil
	v.input.reset()
	v.syncWindow()
	v.emit(EventPageChange)
}

// Close releases every container and fires OnClose. Further calls are no-ops.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	for i, c := range v.containers {
		c.Close()
		delete(v.containers, i)
	}
	v.cancel()
	v.emit(EventClose)
	if v.debug {
		debugf("viewer closed at image %d", v.index)
	}
	if v.onClose != nil {
		v.onClose()
	}
}

// syncWindow makes sure the current image and its neighbours have loading
// containers and closes the ones that fell out of range.
func (v *Viewer) syncWindow() {
	for i, c := range v.containers {
		if i < v.index-preloadRadius || i > v.index+preloadRadius {
			c.Close()
			delete(v.containers, i)
		}
	}
	lo := max(0, v.index-preloadRadius)
	hi := min(len(v.sources)-1, v.index+preloadRadius)
	for i := lo; i <= hi; i++ {
		if _, ok := v.containers[i]; ok {
			continue
		}
		c := NewContainer(ContainerOptions{
			Src:      v.sources[i],
			Index:    i,
			Viewport: v.vp,
			Config:   v.cfg,
			Frames:   &v.frames,
			Loader:   v.loader,
			Callbacks: Callbacks{
				OnStart: v.handleStart,
				OnMove:  v.handleMove,
				OnEnd:   v.handleEnd,
				OnClose: v.Close,
			},
		})
		c.store = v.store
		c.debug = v.debug
		v.containers[i] = c
		c.Load(v.ctx)
	}
}

// --- Drag hand-off from the current container ---

func (v *Viewer) handleStart() {
	v.snap = nil
	v.dragBase = v.dragX
}

func (v *Viewer) handleMove(dx float64) {
	// The first and last images resist being dragged past the strip end.
	if (v.index == 0 && dx > 0) || (v.index == len(v.sources)-1 && dx < 0) {
		dx /= 3
	}
	v.dragX = v.dragBase + dx
}

func (v *Viewer) handleEnd(allowChange bool) {
	pitch := v.pitch()
	if allowChange && math.Abs(v.dragX) > v.cfg.PageThreshold*v.vp.w() {
		switch {
		case v.dragX < 0 && v.index < len(v.sources)-1:
			v.index++
			v.dragX += pitch
		case v.dragX > 0 && v.index > 0:
			v.index--
			v.dragX -= pitch
		}
		if v.debug {
			debugf("page -> %d", v.index)
		}
		v.syncWindow()
		v.emit(EventPageChange)
	}
	v.startSnap()
}

// pitch is the distance between the left edges of neighbouring images.
func (v *Viewer) pitch() float64 {
	return v.vp.w() + v.cfg.Gap
}

func (v *Viewer) startSnap() {
	if v.dragX == 0 {
		v.snap = nil
		return
	}
	v.snap = &stripSnap{
		tween: gween.New(float32(v.dragX), 0, float32(ms(v.cfg.PageSnapDuration)), ease.OutQuart),
		start: v.clock(),
	}
}

func (v *Viewer) stepSnap(now time.Time) {
	if v.snap == nil {
		return
	}
	x, done := v.snap.tween.Set(float32(ms(now.Sub(v.snap.start))))
	v.dragX = float64(x)
	if done {
		v.dragX = 0
		v.snap = nil
	}
}

// --- Game loop ---

// Update processes input, applies finished loads and advances animations.
func (v *Viewer) Update() error {
	if v.closed {
		return nil
	}
	now := v.clock()
	var stats debugStats
	var t0 time.Time
	if v.debug {
		t0 = time.Now()
	}

	if v.testRunner != nil {
		v.testRunner.step(v)
	}
	v.processKeys()
	v.processInput(now)
	if v.closed {
		return nil
	}

	if v.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, c := range v.containers {
		c.Update()
	}
	stats.frames = v.frames.Flush(now)
	v.stepSnap(now)

	if v.debug {
		stats.frameTime = time.Since(t0)
		stats.containers = len(v.containers)
		v.debugLog(stats)
	}
	return nil
}

// processInput feeds one frame of injected or real touches to the current
// container.
func (v *Viewer) processInput(now time.Time) {
	frame, ok := v.nextInjected()
	if !ok {
		frame = v.input.poll()
	}
	cur := v.Current()
	for _, d := range v.input.diff(frame, now) {
		if cur == nil || v.closed {
			return
		}
		d.dispatch(cur)
	}
}

func (v *Viewer) processKeys() {
	if !v.Keyboard {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		v.Close()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.SetIndex(v.index + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.SetIndex(v.index - 1)
	}
}

// Draw fills the background and draws every loaded container at its strip
// position.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.cfg.Background.toRGBA())
	now := v.clock()
	for i, c := range v.containers {
		c.Left = float64(i-v.index)*v.pitch() + v.dragX
		if c.Left <= -v.vp.w() || c.Left >= v.vp.w() {
			continue
		}
		c.Draw(screen, c.Left, now)
	}
	v.flushScreenshots(screen)
}

// Layout reports the fixed logical screen size of the viewer.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.vp.ScreenWidth, v.vp.ScreenHeight
}

func (v *Viewer) emit(t EventType) {
	if v.store == nil {
		return
	}
	ev := GestureEvent{Type: t, Index: v.index}
	if c := v.Current(); c != nil {
		ev.Box = c.Box()
	}
	v.store.EmitEvent(ev)
}
