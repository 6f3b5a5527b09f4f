package pinchview

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// LoadState is the lifecycle of a container's image fetch.
type LoadState uint8

const (
	LoadIdle    LoadState = iota // Load not called yet
	LoadLoading                  // fetch/decode in flight
	LoadLoaded                   // image ready, origin box computed
	LoadFailed                   // settled without a usable image
)

// IsLoading reports whether the fetch is still in flight.
func (s LoadState) IsLoading() bool { return s == LoadLoading }

// IsLoaded reports whether the fetch has settled, successfully or not.
func (s LoadState) IsLoaded() bool { return s == LoadLoaded || s == LoadFailed }

func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadLoading:
		return "loading"
	case LoadLoaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ContainerOptions configures a new Container.
type ContainerOptions struct {
	// Src is the image URL or file path.
	Src string
	// Index is the position of the image in its collection, used for
	// event reporting.
	Index    int
	Viewport Viewport
	Config   Config
	// Callbacks receive drag hand-off and close notifications.
	Callbacks Callbacks
	// Frames schedules momentum steps. Required.
	Frames FrameScheduler
	// Loader fetches the image. A zero Loader reads local files only.
	Loader *Loader
}

type loadResult struct {
	img  image.Image
	info *ImageInfo
	err  error
}

// Container shows one image and turns touches on it into pan, zoom and
// momentum. All methods must be called from the game loop goroutine.
type Container struct {
	// Left is the horizontal offset of the container within the viewer
	// strip. It positions the container and does not affect gestures.
	Left float64

	src    string
	index  int
	cfg    Config
	cb     Callbacks
	loader *Loader

	geom       geometry
	session    session
	forwarding bool
	anim       animator

	state   LoadState
	err     error
	info    *ImageInfo
	img     image.Image
	tex     *ebiten.Image
	pending chan loadResult
	cancel  context.CancelFunc

	store EventStore
	debug bool
}

// NewContainer creates a container. Call Load to start fetching the image.
func NewContainer(opts ContainerOptions) *Container {
	cfg := opts.Config
	if cfg.MaxZoom == 0 {
		cfg = DefaultConfig()
	}
	loader := opts.Loader
	if loader == nil {
		loader = &Loader{MaxTextureSize: cfg.MaxTextureSize}
	}
	c := &Container{
		src:    opts.Src,
		index:  opts.Index,
		cfg:    cfg,
		cb:     opts.Callbacks,
		loader: loader,
		geom:   newGeometry(opts.Viewport, cfg.MaxZoom),
	}
	c.anim = animator{
		sched:    opts.Frames,
		duration: cfg.MomentumDuration,
		apply: func(pos Vec2) {
			c.geom.box.Left = pos.X
			c.geom.box.Top = pos.Y
		},
		finish: c.settle,
	}
	return c
}

// settle writes the final momentum position through the boundary clamp.
func (c *Container) settle(target Vec2) {
	b := c.geom.box
	b.Left, b.Top = target.X, target.Y
	c.geom.box = c.geom.clampBox(b)
	if c.debug {
		debugf("image %d: momentum settled at %v", c.index, c.geom.box)
	}
}

// Src returns the image source.
func (c *Container) Src() string { return c.src }

// Index returns the position of the image in its collection.
func (c *Container) Index() int { return c.index }

// Box returns the current on-screen rectangle of the image relative to the
// container.
func (c *Container) Box() Box { return c.geom.box }

// Origin returns the default-fit box and whether an image has been loaded.
func (c *Container) Origin() (OriginBox, bool) { return c.geom.origin, c.geom.valid }

// Zoom returns the current magnification relative to the fit width.
func (c *Container) Zoom() float64 { return c.geom.zoom() }

// State returns the load lifecycle state.
func (c *Container) State() LoadState { return c.state }

// Err returns the load error once the state is LoadFailed.
func (c *Container) Err() error { return c.err }

// Info returns image metadata once loaded, or nil.
func (c *Container) Info() *ImageInfo { return c.info }

// Animating reports whether a momentum animation is running.
func (c *Container) Animating() bool { return c.anim.running() }

// Gesturing reports whether fingers are down on the container.
func (c *Container) Gesturing() bool { return c.session != nil }

// Load starts fetching the image in the background. The result is applied
// by the next Update after it arrives.
func (c *Container) Load(ctx context.Context) {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = LoadLoading
	c.err = nil

	ch := make(chan loadResult, 1)
	c.pending = ch
	loader, src := c.loader, c.src
	go func() {
		img, info, err := loader.Load(ctx, src)
		ch <- loadResult{img: img, info: info, err: err}
	}()
}

// Update applies a finished load, if any. Call once per tick.
func (c *Container) Update() {
	if c.pending == nil {
		return
	}
	select {
	case r := <-c.pending:
		c.pending = nil
		c.cancel = nil
		c.finishLoad(r)
	default:
	}
}

// finishLoad settles the load state. On success the origin box is derived
// and the live box reset to it.
func (c *Container) finishLoad(r loadResult) {
	if r.err == nil && r.img != nil {
		b := r.img.Bounds()
		if o, ok := FitOrigin(ActualSize{Width: b.Dx(), Height: b.Dy()}, c.geom.viewport); ok {
			c.img = r.img
			c.info = r.info
			c.tex = nil
			c.geom.seed(o)
			c.state = LoadLoaded
			if c.debug {
				debugf("image %d: loaded %s %dx%d origin=%v", c.index, c.src, b.Dx(), b.Dy(), o.Box())
			}
			return
		}
		r.err = ErrEmptyImage
	}
	c.img = nil
	c.tex = nil
	c.err = r.err
	c.geom.reset()
	c.state = LoadFailed
	if c.debug {
		debugf("image %d: load failed: %v", c.index, r.err)
	}
}

// Close cancels a load in flight and any pending momentum frame. The
// container must not be used afterwards.
func (c *Container) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.pending = nil
	c.anim.cancel()
	c.session = nil
	c.forwarding = false
	if c.tex != nil {
		c.tex.Deallocate()
		c.tex = nil
	}
}

// emit forwards a gesture event to the event store, if any.
func (c *Container) emit(t EventType, dx float64, allow bool, zoom float64) {
	if c.store == nil {
		return
	}
	c.store.EmitEvent(GestureEvent{
		Type:        t,
		Index:       c.index,
		DeltaX:      dx,
		AllowChange: allow,
		Zoom:        zoom,
		Box:         c.geom.box,
	})
}
